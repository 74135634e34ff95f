/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/near-shell/rpc"
	"github.com/xuperchain/near-shell/utils/format"
)

// AccountStateCommand view account state
type AccountStateCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewAccountStateCommand new state cmd
func NewAccountStateCommand(cli *Cli) *cobra.Command {
	s := new(AccountStateCommand)
	s.cli = cli
	s.cmd = &cobra.Command{
		Use:   "state <accountId>",
		Short: "View account state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return s.viewAccount(ctx, args[0])
		},
	}
	return s.cmd
}

type accountState struct {
	*rpc.AccountView
	FormattedAmount string `json:"formattedAmount,omitempty"`
}

func (s *AccountStateCommand) viewAccount(ctx context.Context, accountID string) error {
	n, err := s.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	view, err := n.Account(accountID).State(ctx)
	if err != nil {
		return err
	}
	state := accountState{AccountView: view}
	if view.Amount != "" {
		state.FormattedAmount, err = format.FormatNearAmount(view.Amount)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(s.cli.out, "Account %s\n", accountID)
	fmt.Fprintln(s.cli.out, inspectResponse(state))
	return nil
}

// AccountDeleteCommand delete an account and send the rest tokens to a beneficiary
type AccountDeleteCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewAccountDeleteCommand new delete cmd
func NewAccountDeleteCommand(cli *Cli) *cobra.Command {
	d := new(AccountDeleteCommand)
	d.cli = cli
	d.cmd = &cobra.Command{
		Use:   "delete <accountId> <beneficiaryId>",
		Short: "Delete an account and transfer funds to beneficiary account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return d.deleteAccount(ctx, args[0], args[1])
		},
	}
	return d.cmd
}

func (d *AccountDeleteCommand) deleteAccount(ctx context.Context, accountID, beneficiaryID string) error {
	cfg := d.cli.RootOptions.CliConfig
	fmt.Fprintf(d.cli.out, "Deleting account. Account id: %s, node: %s, helper: %s, beneficiary: %s\n",
		accountID, cfg.NodeURL, cfg.HelperURL, beneficiaryID)
	n, err := d.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	if _, err := n.Account(accountID).DeleteAccount(ctx, beneficiaryID); err != nil {
		return err
	}
	fmt.Fprintf(d.cli.out, "Account %s for network \"%s\" was deleted.\n", accountID, cfg.NetworkID)
	return nil
}

// AccountKeysCommand list access keys of an account
type AccountKeysCommand struct {
	cli *Cli
	cmd *cobra.Command

	json bool
}

// NewAccountKeysCommand new keys cmd
func NewAccountKeysCommand(cli *Cli) *cobra.Command {
	k := new(AccountKeysCommand)
	k.cli = cli
	k.cmd = &cobra.Command{
		Use:   "keys <accountId>",
		Short: "View account public keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return k.keys(ctx, args[0])
		},
	}
	k.cmd.Flags().BoolVar(&k.json, "json", false, "print the raw key list")
	return k.cmd
}

func (k *AccountKeysCommand) keys(ctx context.Context, accountID string) error {
	n, err := k.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	keys, err := n.Account(accountID).AccessKeys(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(k.cli.out, "Keys for account %s\n", accountID)
	if k.json {
		fmt.Fprintln(k.cli.out, inspectResponse(keys))
		return nil
	}
	printKeys(k.cli.out, keys)
	return nil
}

func init() {
	AddCommand(NewAccountStateCommand)
	AddCommand(NewAccountDeleteCommand)
	AddCommand(NewAccountKeysCommand)
}
