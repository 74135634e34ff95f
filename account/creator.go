/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/big"
	"net/http"
	"strings"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// Creator creates new accounts
type Creator interface {
	CreateAccount(ctx context.Context, newAccountID string, publicKey keypair.PublicKey) error
}

// LocalCreator creates accounts signed by a master account
type LocalCreator struct {
	MasterAccount  *Account
	InitialBalance *big.Int
}

// CreateAccount implements Creator
func (c *LocalCreator) CreateAccount(ctx context.Context, newAccountID string, publicKey keypair.PublicKey) error {
	_, err := c.MasterAccount.CreateAccount(ctx, newAccountID, publicKey, c.InitialBalance)
	return err
}

// URLCreator asks a contract helper service to create accounts
type URLCreator struct {
	HelperURL  string
	HTTPClient *http.Client
}

type createAccountRequest struct {
	NewAccountID        string `json:"newAccountId"`
	NewAccountPublicKey string `json:"newAccountPublicKey"`
}

// CreateAccount implements Creator
func (c *URLCreator) CreateAccount(ctx context.Context, newAccountID string, publicKey keypair.PublicKey) error {
	body, err := json.Marshal(&createAccountRequest{
		NewAccountID:        newAccountID,
		NewAccountPublicKey: publicKey.String(),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.HelperURL, "/")+"/account", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("helper request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("helper create account %s: %s %s", newAccountID, resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}
