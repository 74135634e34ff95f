/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package account

import (
	"fmt"

	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/keystore"
)

// InMemorySigner signs with keys looked up in a key store
type InMemorySigner struct {
	KeyStore keystore.KeyStore
}

// NewInMemorySigner new a signer backed by ks
func NewInMemorySigner(ks keystore.KeyStore) *InMemorySigner {
	return &InMemorySigner{KeyStore: ks}
}

func (s *InMemorySigner) keyPair(accountID, networkID string) (*keypair.KeyPair, error) {
	kp, err := s.KeyStore.GetKey(networkID, accountID)
	if err != nil {
		return nil, err
	}
	if kp == nil {
		return nil, fmt.Errorf("%w: no key for %s on %s in key store", ErrNoKey, accountID, networkID)
	}
	return kp, nil
}

// GetPublicKey implements transaction.Signer
func (s *InMemorySigner) GetPublicKey(accountID, networkID string) (keypair.PublicKey, error) {
	kp, err := s.keyPair(accountID, networkID)
	if err != nil {
		return keypair.PublicKey{}, err
	}
	return kp.PublicKey(), nil
}

// SignMessage implements transaction.Signer
func (s *InMemorySigner) SignMessage(msg []byte, accountID, networkID string) (keypair.Signature, error) {
	kp, err := s.keyPair(accountID, networkID)
	if err != nil {
		return keypair.Signature{}, err
	}
	return kp.Sign(msg), nil
}
