/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package login

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// Title is shown by the wallet on the authorization page
const Title = "NEAR Shell"

// query parameter names understood by the wallet
const (
	paramTitle     = "title"
	paramPublicKey = "public_key"
)

// AuthorizationURL builds <walletURL>/login/?title=...&public_key=...
func AuthorizationURL(walletURL string, publicKey keypair.PublicKey) (string, error) {
	u, err := url.Parse(strings.TrimRight(walletURL, "/") + "/login/")
	if err != nil {
		return "", fmt.Errorf("bad wallet url %q: %w", walletURL, err)
	}
	q := u.Query()
	q.Set(paramTitle, Title)
	q.Set(paramPublicKey, publicKey.String())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ShortKey keeps the public key readable: first 14 characters and an ellipsis
func ShortKey(publicKey string) string {
	const keep = 14
	if len(publicKey) <= keep {
		return publicKey + "..."
	}
	return publicKey[:keep] + "..."
}
