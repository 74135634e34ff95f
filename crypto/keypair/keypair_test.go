package keypair

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

func TestKeyPairRoundTrip(t *testing.T) {
	kp, err := FromRandom()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(kp.String(), "ed25519:") {
		t.Errorf("secret key text %q misses prefix", kp.String())
	}

	restored, err := FromString(kp.String())
	if err != nil {
		t.Fatalf("FromString() error = %v", err)
	}
	if restored.PublicKey() != kp.PublicKey() {
		t.Errorf("restored public key %s, want %s", restored.PublicKey(), kp.PublicKey())
	}

	pk, err := PublicKeyFromString(kp.PublicKey().String())
	if err != nil {
		t.Fatalf("PublicKeyFromString() error = %v", err)
	}
	if pk != kp.PublicKey() {
		t.Errorf("parsed public key %s, want %s", pk, kp.PublicKey())
	}
}

func TestKeyPairFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := fromReader(bytes.NewReader(seed))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fromReader(bytes.NewReader(seed))
	if err != nil {
		t.Fatal(err)
	}
	if a.PublicKey() != b.PublicKey() {
		t.Error("same seed must give the same key pair")
	}
}

func TestFromStringCorruptedPublicHalf(t *testing.T) {
	a, err := fromReader(bytes.NewReader(bytes.Repeat([]byte{1}, 32)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := fromReader(bytes.NewReader(bytes.Repeat([]byte{2}, 32)))
	if err != nil {
		t.Fatal(err)
	}
	// a 的种子拼上 b 的公钥
	corrupted := make([]byte, 0, 64)
	corrupted = append(corrupted, a.secret[:32]...)
	corrupted = append(corrupted, b.secret[32:]...)

	_, err = FromString("ed25519:" + base58.Encode(corrupted))
	if !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("FromString() error = %v, want %v", err, ErrKeyMismatch)
	}
	if _, err := FromString(a.String()); err != nil {
		t.Errorf("FromString() on an intact key error = %v", err)
	}
}

func TestSignVerify(t *testing.T) {
	kp, err := FromRandom()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("transfer 1 NEAR")
	sig := kp.Sign(msg)
	if !kp.PublicKey().Verify(msg, sig) {
		t.Error("signature does not verify")
	}
	if kp.PublicKey().Verify([]byte("transfer 2 NEAR"), sig) {
		t.Error("signature verifies for a different message")
	}
}

func TestPublicKeyFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{
			name: "valid",
			in:   "ed25519:11111111111111111111111111111111",
		},
		{
			name: "bare base58",
			in:   "11111111111111111111111111111111",
		},
		{
			name:    "unknown curve",
			in:      "secp256k1:11111111111111111111111111111111",
			wantErr: ErrUnknownKeyType,
		},
		{
			name:    "short key",
			in:      "ed25519:1111",
			wantErr: ErrInvalidKeyLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PublicKeyFromString(tt.in)
			if tt.wantErr == nil && err != nil {
				t.Errorf("PublicKeyFromString() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("PublicKeyFromString() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
