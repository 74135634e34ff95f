/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package near bootstraps a connection to one network: node provider,
// signer backed by the key store and the account creator.
package near

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/xuperchain/near-shell/account"
	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/keystore"
	"github.com/xuperchain/near-shell/rpc"
)

// ErrNoAccountCreator neither a master account nor a helper url is configured
var ErrNoAccountCreator = errors.New("account creation needs a master account or a helper url")

// Config is the connection config
type Config struct {
	NetworkID      string
	NodeURL        string
	WalletURL      string
	HelperURL      string
	MasterAccount  string
	InitialBalance *big.Int
	KeyStore       keystore.KeyStore
	// RPCTimeout bounds each node call, zero means no bound
	RPCTimeout time.Duration
	Logger     log.Logger
}

// Near is a connected network
type Near struct {
	Config     Config
	Provider   *rpc.Provider
	Connection *account.Connection
	creator    account.Creator
}

// Connect dials the node and wires signer and account creator
func Connect(ctx context.Context, cfg Config) (*Near, error) {
	if cfg.Logger.Logger == nil {
		cfg.Logger = log.DefaultLogger
	}
	if cfg.KeyStore == nil {
		cfg.KeyStore = keystore.NewInMemoryKeyStore()
	}
	provider, err := rpc.Dial(ctx, cfg.NodeURL, rpc.WithTimeout(cfg.RPCTimeout), rpc.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	return newNear(cfg, provider), nil
}

func newNear(cfg Config, provider *rpc.Provider) *Near {
	n := &Near{
		Config:   cfg,
		Provider: provider,
		Connection: &account.Connection{
			NetworkID: cfg.NetworkID,
			Provider:  provider,
			Signer:    account.NewInMemorySigner(cfg.KeyStore),
			Logger:    cfg.Logger,
		},
	}
	switch {
	case cfg.MasterAccount != "":
		n.creator = &account.LocalCreator{
			MasterAccount:  n.Account(cfg.MasterAccount),
			InitialBalance: cfg.InitialBalance,
		}
	case cfg.HelperURL != "":
		n.creator = &account.URLCreator{HelperURL: cfg.HelperURL}
	}
	cfg.Logger.Debug("connected", "network", cfg.NetworkID, "node", cfg.NodeURL)
	return n
}

// Account returns a handle on accountID
func (n *Near) Account(accountID string) *account.Account {
	return account.New(n.Connection, accountID)
}

// CreateAccount creates accountID with publicKey through the configured creator
func (n *Near) CreateAccount(ctx context.Context, accountID string, publicKey keypair.PublicKey) error {
	if n.creator == nil {
		return ErrNoAccountCreator
	}
	return n.creator.CreateAccount(ctx, accountID, publicKey)
}

// Close releases the node connection
func (n *Near) Close() {
	n.Provider.Close()
}
