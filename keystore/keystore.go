/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package keystore maps (network, account) pairs to signing key pairs.
package keystore

import (
	"sort"
	"sync"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// KeyStore stores key pairs by network and account
type KeyStore interface {
	// SetKey stores kp for accountID on networkID, overwriting any previous key
	SetKey(networkID, accountID string, kp *keypair.KeyPair) error
	// GetKey returns nil, nil when no key is stored
	GetKey(networkID, accountID string) (*keypair.KeyPair, error)
	RemoveKey(networkID, accountID string) error
	Clear() error
	GetNetworks() ([]string, error)
	GetAccounts(networkID string) ([]string, error)
}

// InMemoryKeyStore keeps keys in process memory
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]map[string]*keypair.KeyPair
}

// NewInMemoryKeyStore new an empty memory key store
func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{
		keys: make(map[string]map[string]*keypair.KeyPair),
	}
}

// SetKey implements KeyStore
func (s *InMemoryKeyStore) SetKey(networkID, accountID string, kp *keypair.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, ok := s.keys[networkID]
	if !ok {
		accounts = make(map[string]*keypair.KeyPair)
		s.keys[networkID] = accounts
	}
	accounts[accountID] = kp
	return nil
}

// GetKey implements KeyStore
func (s *InMemoryKeyStore) GetKey(networkID, accountID string) (*keypair.KeyPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[networkID][accountID], nil
}

// RemoveKey implements KeyStore
func (s *InMemoryKeyStore) RemoveKey(networkID, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys[networkID], accountID)
	return nil
}

// Clear implements KeyStore
func (s *InMemoryKeyStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]map[string]*keypair.KeyPair)
	return nil
}

// GetNetworks implements KeyStore
func (s *InMemoryKeyStore) GetNetworks() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	networks := make([]string, 0, len(s.keys))
	for n, accounts := range s.keys {
		if len(accounts) > 0 {
			networks = append(networks, n)
		}
	}
	sort.Strings(networks)
	return networks, nil
}

// GetAccounts implements KeyStore
func (s *InMemoryKeyStore) GetAccounts(networkID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]string, 0, len(s.keys[networkID]))
	for a := range s.keys[networkID] {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	return accounts, nil
}
