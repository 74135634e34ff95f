/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package keystore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

const keyFileSuffix = ".json"

/* UnencryptedFileSystemKeyStore keeps one plain json file per account:

└── <root>	// normally `./neardev`
	└── <network id>
		├── <account id>.json
		└── <account id>.json

*/
type UnencryptedFileSystemKeyStore struct {
	root string
}

// accountKeyFile is the on-disk layout of a key file
type accountKeyFile struct {
	AccountID  string `json:"account_id"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// NewUnencryptedFileSystemKeyStore new a file key store rooted at dir
func NewUnencryptedFileSystemKeyStore(dir string) *UnencryptedFileSystemKeyStore {
	return &UnencryptedFileSystemKeyStore{root: dir}
}

// Root returns the key store directory
func (s *UnencryptedFileSystemKeyStore) Root() string {
	return s.root
}

func (s *UnencryptedFileSystemKeyStore) keyFile(networkID, accountID string) string {
	return filepath.Join(s.root, networkID, accountID+keyFileSuffix)
}

// SetKey implements KeyStore
func (s *UnencryptedFileSystemKeyStore) SetKey(networkID, accountID string, kp *keypair.KeyPair) error {
	dir := filepath.Join(s.root, networkID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create key store dir:%s", err)
	}
	content, err := json.Marshal(&accountKeyFile{
		AccountID:  accountID,
		PublicKey:  kp.PublicKey().String(),
		PrivateKey: kp.String(),
	})
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(s.keyFile(networkID, accountID), content, 0600); err != nil {
		return fmt.Errorf("failed to save key:%s", err)
	}
	return nil
}

// GetKey implements KeyStore
func (s *UnencryptedFileSystemKeyStore) GetKey(networkID, accountID string) (*keypair.KeyPair, error) {
	content, err := ioutil.ReadFile(s.keyFile(networkID, accountID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f accountKeyFile
	if err := json.Unmarshal(bytes.TrimSpace(content), &f); err != nil {
		return nil, fmt.Errorf("bad key file for %s: %w", accountID, err)
	}
	return keypair.FromString(f.PrivateKey)
}

// RemoveKey implements KeyStore
func (s *UnencryptedFileSystemKeyStore) RemoveKey(networkID, accountID string) error {
	err := os.Remove(s.keyFile(networkID, accountID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear implements KeyStore
func (s *UnencryptedFileSystemKeyStore) Clear() error {
	networks, err := s.GetNetworks()
	if err != nil {
		return err
	}
	for _, n := range networks {
		accounts, err := s.GetAccounts(n)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if err := s.RemoveKey(n, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetNetworks implements KeyStore
func (s *UnencryptedFileSystemKeyStore) GetNetworks() ([]string, error) {
	dirs, err := ioutil.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	networks := make([]string, 0)
	for _, dir := range dirs {
		if dir.IsDir() {
			networks = append(networks, dir.Name())
		}
	}
	return networks, nil
}

// GetAccounts implements KeyStore
func (s *UnencryptedFileSystemKeyStore) GetAccounts(networkID string) ([]string, error) {
	files, err := ioutil.ReadDir(filepath.Join(s.root, networkID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	accounts := make([]string, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), keyFileSuffix) {
			continue
		}
		accounts = append(accounts, strings.TrimSuffix(f.Name(), keyFileSuffix))
	}
	sort.Strings(accounts)
	return accounts, nil
}
