/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/utils/format"
)

// AccountCreateCommand create a new account
type AccountCreateCommand struct {
	cli *Cli
	cmd *cobra.Command

	publicKey      string
	initialBalance string
}

// NewAccountCreateCommand new create_account cmd
func NewAccountCreateCommand(cli *Cli) *cobra.Command {
	c := new(AccountCreateCommand)
	c.cli = cli
	c.cmd = &cobra.Command{
		Use:   "create_account <accountId>",
		Short: "Create a new developer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return c.createAccount(ctx, args[0])
		},
	}
	c.addFlags()
	return c.cmd
}

func (c *AccountCreateCommand) addFlags() {
	c.cmd.Flags().StringVar(&c.publicKey, "publicKey", "", "public key to initialize the account with, a new key is generated when empty")
	c.cmd.Flags().StringVar(&c.initialBalance, "initialBalance", "0.1", "number of tokens to transfer to newly created account")
}

func (c *AccountCreateCommand) createAccount(ctx context.Context, accountID string) error {
	balance, err := format.ParseNearAmountBig(c.initialBalance)
	if err != nil {
		return err
	}

	var kp *keypair.KeyPair
	var publicKey keypair.PublicKey
	if c.publicKey != "" {
		publicKey, err = keypair.PublicKeyFromString(c.publicKey)
		if err != nil {
			return err
		}
	} else {
		kp, err = keypair.FromRandom()
		if err != nil {
			return err
		}
		publicKey = kp.PublicKey()
	}

	cfg := c.cli.NearConfig()
	cfg.InitialBalance = balance
	n, err := c.cli.connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := n.CreateAccount(ctx, accountID, publicKey); err != nil {
		return err
	}
	// 账户创建成功后才保存新生成的私钥
	if kp != nil {
		if err := n.Config.KeyStore.SetKey(cfg.NetworkID, accountID, kp); err != nil {
			return err
		}
	}
	fmt.Fprintf(c.cli.out, "Account %s for network \"%s\" was created.\n", accountID, cfg.NetworkID)
	return nil
}

func init() {
	AddCommand(NewAccountCreateCommand)
}
