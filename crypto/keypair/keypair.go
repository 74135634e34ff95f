/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package keypair implements the ed25519 key pairs used to sign transactions.
// Keys travel as text in the form "ed25519:<base58>".
package keypair

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
)

// KeyType is the curve tag carried in front of every key
type KeyType uint8

const (
	// ED25519 is the only curve the shell generates
	ED25519 KeyType = 0
)

var (
	// ErrUnknownKeyType key text carries an unsupported curve prefix
	ErrUnknownKeyType = errors.New("unknown key type")
	// ErrInvalidKeyLength decoded key has the wrong size
	ErrInvalidKeyLength = errors.New("invalid key length")
	// ErrKeyMismatch the public half stored in a secret key does not match its seed
	ErrKeyMismatch = errors.New("secret key does not match its public key")
)

// String returns the text prefix of the key type
func (t KeyType) String() string {
	switch t {
	case ED25519:
		return "ed25519"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

func parseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(s) {
	case "ed25519":
		return ED25519, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKeyType, s)
	}
}

// splitKey splits "<type>:<base58>" and decodes the payload.
// A bare base58 string is treated as ed25519.
func splitKey(s string) (KeyType, []byte, error) {
	kt := ED25519
	payload := s
	if idx := strings.Index(s, ":"); idx >= 0 {
		var err error
		kt, err = parseKeyType(s[:idx])
		if err != nil {
			return 0, nil, err
		}
		payload = s[idx+1:]
	}
	data, err := base58.Decode(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("decode key: %w", err)
	}
	return kt, data, nil
}

// PublicKey is the public half of a key pair
type PublicKey struct {
	KeyType KeyType
	Data    [ed25519.PublicKeySize]byte
}

// PublicKeyFromString parses "ed25519:<base58>"
func PublicKeyFromString(s string) (PublicKey, error) {
	kt, data, err := splitKey(s)
	if err != nil {
		return PublicKey{}, err
	}
	if len(data) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: public key has %d bytes", ErrInvalidKeyLength, len(data))
	}
	pk := PublicKey{KeyType: kt}
	copy(pk.Data[:], data)
	return pk, nil
}

// String encodes the key as "ed25519:<base58>"
func (pk PublicKey) String() string {
	return pk.KeyType.String() + ":" + base58.Encode(pk.Data[:])
}

// Verify checks sig against msg
func (pk PublicKey) Verify(msg []byte, sig Signature) bool {
	if pk.KeyType != ED25519 || sig.KeyType != ED25519 {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk.Data[:]), msg, sig.Data[:])
}

// Signature is an ed25519 signature tagged with its key type
type Signature struct {
	KeyType KeyType
	Data    [ed25519.SignatureSize]byte
}

// KeyPair holds the private key; the public key is derived from it
type KeyPair struct {
	secret ed25519.PrivateKey
}

// FromRandom generates a fresh ed25519 key pair
func FromRandom() (*KeyPair, error) {
	return fromReader(rand.Reader)
}

func fromReader(r io.Reader) (*KeyPair, error) {
	_, sk, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}
	return &KeyPair{secret: sk}, nil
}

// FromString parses a secret key "ed25519:<base58>" holding the 64 byte
// private key, or a 32 byte seed
func FromString(s string) (*KeyPair, error) {
	_, data, err := splitKey(s)
	if err != nil {
		return nil, err
	}
	switch len(data) {
	case ed25519.PrivateKeySize:
		secret := ed25519.NewKeyFromSeed(data[:ed25519.SeedSize])
		if !bytes.Equal(secret[ed25519.SeedSize:], data[ed25519.SeedSize:]) {
			return nil, ErrKeyMismatch
		}
		return &KeyPair{secret: secret}, nil
	case ed25519.SeedSize:
		return &KeyPair{secret: ed25519.NewKeyFromSeed(data)}, nil
	default:
		return nil, fmt.Errorf("%w: secret key has %d bytes", ErrInvalidKeyLength, len(data))
	}
}

// PublicKey returns the public half
func (kp *KeyPair) PublicKey() PublicKey {
	pk := PublicKey{KeyType: ED25519}
	copy(pk.Data[:], kp.secret.Public().(ed25519.PublicKey))
	return pk
}

// Sign signs msg with the private key
func (kp *KeyPair) Sign(msg []byte) Signature {
	sig := Signature{KeyType: ED25519}
	copy(sig.Data[:], ed25519.Sign(kp.secret, msg))
	return sig
}

// String encodes the secret key as "ed25519:<base58>"
func (kp *KeyPair) String() string {
	return ED25519.String() + ":" + base58.Encode(kp.secret)
}
