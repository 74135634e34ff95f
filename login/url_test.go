package login

import (
	"net/url"
	"testing"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

func TestAuthorizationURL(t *testing.T) {
	kp, err := keypair.FromRandom()
	if err != nil {
		t.Fatal(err)
	}
	pk := kp.PublicKey()

	tests := []struct {
		name      string
		walletURL string
		wantBase  string
		wantErr   bool
	}{
		{name: "plain", walletURL: "https://wallet.testnet.near.org", wantBase: "https://wallet.testnet.near.org/login/"},
		{name: "trailing slash", walletURL: "https://wallet.testnet.near.org/", wantBase: "https://wallet.testnet.near.org/login/"},
		{name: "with path", walletURL: "http://localhost:4000/wallet", wantBase: "http://localhost:4000/wallet/login/"},
		{name: "bad url", walletURL: "http://[::1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AuthorizationURL(tt.walletURL, pk)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AuthorizationURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			again, _ := AuthorizationURL(tt.walletURL, pk)
			if got != again {
				t.Errorf("not deterministic: %q != %q", got, again)
			}
			u, err := url.Parse(got)
			if err != nil {
				t.Fatal(err)
			}
			q := u.Query()
			u.RawQuery = ""
			if u.String() != tt.wantBase {
				t.Errorf("base = %q, want %q", u.String(), tt.wantBase)
			}
			if q.Get("title") != "NEAR Shell" {
				t.Errorf("title = %q", q.Get("title"))
			}
			if q.Get("public_key") != pk.String() {
				t.Errorf("public_key = %q, want %q", q.Get("public_key"), pk.String())
			}
		})
	}
}

func TestShortKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ed25519:6E8sCci9badyRkXb3JoRpBj5p8C6Tw41ELDZoiihKEtp", "ed25519:6E8sCc..."},
		{"short", "short..."},
	}
	for _, tt := range tests {
		if got := ShortKey(tt.in); got != tt.want {
			t.Errorf("ShortKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
