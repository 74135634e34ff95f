package keystore

import (
	"sort"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// MergeKeyStore reads from every store in order and writes to the first one
type MergeKeyStore struct {
	stores []KeyStore
}

// NewMergeKeyStore new a merged key store, stores must not be empty
func NewMergeKeyStore(stores ...KeyStore) *MergeKeyStore {
	return &MergeKeyStore{stores: stores}
}

// SetKey implements KeyStore
func (m *MergeKeyStore) SetKey(networkID, accountID string, kp *keypair.KeyPair) error {
	return m.stores[0].SetKey(networkID, accountID, kp)
}

// GetKey implements KeyStore
func (m *MergeKeyStore) GetKey(networkID, accountID string) (*keypair.KeyPair, error) {
	for _, s := range m.stores {
		kp, err := s.GetKey(networkID, accountID)
		if err != nil {
			return nil, err
		}
		if kp != nil {
			return kp, nil
		}
	}
	return nil, nil
}

// RemoveKey implements KeyStore
func (m *MergeKeyStore) RemoveKey(networkID, accountID string) error {
	for _, s := range m.stores {
		if err := s.RemoveKey(networkID, accountID); err != nil {
			return err
		}
	}
	return nil
}

// Clear implements KeyStore
func (m *MergeKeyStore) Clear() error {
	for _, s := range m.stores {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	return nil
}

// GetNetworks implements KeyStore
func (m *MergeKeyStore) GetNetworks() ([]string, error) {
	return m.union(func(s KeyStore) ([]string, error) { return s.GetNetworks() })
}

// GetAccounts implements KeyStore
func (m *MergeKeyStore) GetAccounts(networkID string) ([]string, error) {
	return m.union(func(s KeyStore) ([]string, error) { return s.GetAccounts(networkID) })
}

func (m *MergeKeyStore) union(list func(KeyStore) ([]string, error)) ([]string, error) {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, s := range m.stores {
		names, err := list(s)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			res = append(res, n)
		}
	}
	sort.Strings(res)
	return res, nil
}
