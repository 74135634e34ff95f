/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package transaction builds, encodes and signs chain transactions.
package transaction

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// ErrNoActions a transaction must carry at least one action
var ErrNoActions = errors.New("transaction has no actions")

// Transaction is the unsigned transaction body
type Transaction struct {
	SignerID   string
	PublicKey  keypair.PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []Action
}

// Encode returns the borsh encoding of the transaction
func (tx *Transaction) Encode() ([]byte, error) {
	if len(tx.Actions) == 0 {
		return nil, ErrNoActions
	}
	w := new(borshWriter)
	tx.encode(w)
	return w.result()
}

func (tx *Transaction) encode(w *borshWriter) {
	w.string(tx.SignerID)
	encodePublicKey(w, tx.PublicKey)
	w.u64(tx.Nonce)
	w.string(tx.ReceiverID)
	w.fixed(tx.BlockHash[:])
	w.u32(uint32(len(tx.Actions)))
	for _, a := range tx.Actions {
		a.encode(w)
	}
}

// SignedTransaction is a transaction with its signature
type SignedTransaction struct {
	Transaction *Transaction
	Signature   keypair.Signature
}

// Encode returns the borsh encoding of the signed transaction
func (st *SignedTransaction) Encode() ([]byte, error) {
	if len(st.Transaction.Actions) == 0 {
		return nil, ErrNoActions
	}
	w := new(borshWriter)
	st.Transaction.encode(w)
	w.u8(uint8(st.Signature.KeyType))
	w.fixed(st.Signature.Data[:])
	return w.result()
}

// Base64 is the form broadcast to the node
func (st *SignedTransaction) Base64() (string, error) {
	buf, err := st.Encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Signer signs a message on behalf of an account
type Signer interface {
	GetPublicKey(accountID, networkID string) (keypair.PublicKey, error)
	SignMessage(msg []byte, accountID, networkID string) (keypair.Signature, error)
}

// Sign hashes the encoded transaction with sha256 and signs the digest.
// The returned hash is the base58 transaction id.
func Sign(tx *Transaction, signer Signer, accountID, networkID string) (string, *SignedTransaction, error) {
	buf, err := tx.Encode()
	if err != nil {
		return "", nil, err
	}
	digest := sha256.Sum256(buf)
	sig, err := signer.SignMessage(digest[:], accountID, networkID)
	if err != nil {
		return "", nil, fmt.Errorf("sign transaction: %w", err)
	}
	return base58.Encode(digest[:]), &SignedTransaction{Transaction: tx, Signature: sig}, nil
}
