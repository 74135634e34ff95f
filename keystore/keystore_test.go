package keystore

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

func mustKeyPair(t *testing.T) *keypair.KeyPair {
	t.Helper()
	kp, err := keypair.FromRandom()
	if err != nil {
		t.Fatal(err)
	}
	return kp
}

func TestKeyStores(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) KeyStore
	}{
		{
			name:  "memory",
			store: func(t *testing.T) KeyStore { return NewInMemoryKeyStore() },
		},
		{
			name:  "file system",
			store: func(t *testing.T) KeyStore { return NewUnencryptedFileSystemKeyStore(t.TempDir()) },
		},
		{
			name: "merge",
			store: func(t *testing.T) KeyStore {
				return NewMergeKeyStore(NewInMemoryKeyStore(), NewUnencryptedFileSystemKeyStore(t.TempDir()))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store(t)
			kp := mustKeyPair(t)

			got, err := s.GetKey("default", "alice.test")
			if err != nil || got != nil {
				t.Fatalf("GetKey() on empty store = %v, %v", got, err)
			}

			if err := s.SetKey("default", "alice.test", kp); err != nil {
				t.Fatalf("SetKey() error = %v", err)
			}
			got, err = s.GetKey("default", "alice.test")
			if err != nil {
				t.Fatalf("GetKey() error = %v", err)
			}
			if got == nil || got.PublicKey() != kp.PublicKey() {
				t.Fatalf("GetKey() returned a different key")
			}

			networks, _ := s.GetNetworks()
			if !reflect.DeepEqual(networks, []string{"default"}) {
				t.Errorf("GetNetworks() = %v", networks)
			}
			accounts, _ := s.GetAccounts("default")
			if !reflect.DeepEqual(accounts, []string{"alice.test"}) {
				t.Errorf("GetAccounts() = %v", accounts)
			}

			if err := s.RemoveKey("default", "alice.test"); err != nil {
				t.Fatalf("RemoveKey() error = %v", err)
			}
			if got, _ := s.GetKey("default", "alice.test"); got != nil {
				t.Error("key still present after RemoveKey()")
			}
		})
	}
}

func TestUnencryptedFileSystemKeyStoreLayout(t *testing.T) {
	root := t.TempDir()
	s := NewUnencryptedFileSystemKeyStore(root)
	kp := mustKeyPair(t)
	if err := s.SetKey("testnet", "bob.testnet", kp); err != nil {
		t.Fatal(err)
	}

	content, err := ioutil.ReadFile(filepath.Join(root, "testnet", "bob.testnet.json"))
	if err != nil {
		t.Fatalf("key file missing: %v", err)
	}
	var f map[string]string
	if err := json.Unmarshal(content, &f); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"account_id":  "bob.testnet",
		"public_key":  kp.PublicKey().String(),
		"private_key": kp.String(),
	}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("key file = %v, want %v", f, want)
	}
}

func TestMergeKeyStoreWritesFirst(t *testing.T) {
	first, second := NewInMemoryKeyStore(), NewInMemoryKeyStore()
	m := NewMergeKeyStore(first, second)

	old := mustKeyPair(t)
	if err := second.SetKey("default", "carol", old); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.GetKey("default", "carol"); got != old {
		t.Error("merge store must fall back to later stores")
	}

	kp := mustKeyPair(t)
	if err := m.SetKey("default", "carol", kp); err != nil {
		t.Fatal(err)
	}
	if got, _ := first.GetKey("default", "carol"); got != kp {
		t.Error("merge store must write the first store")
	}
	if got, _ := second.GetKey("default", "carol"); got != old {
		t.Error("merge store must not touch later stores on write")
	}
}
