/*
 * Copyright (c) 2021, Baidu.com, Inc. All Rights Reserved.
 */

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/utils/format"
)

// TransferCommand transfer tokens between accounts
type TransferCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewTransferCommand new send cmd
func NewTransferCommand(cli *Cli) *cobra.Command {
	t := new(TransferCommand)
	t.cli = cli
	t.cmd = &cobra.Command{
		Use:   "send <sender> <receiver> <amount>",
		Short: "Send tokens to given receiver",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return t.transfer(ctx, args[0], args[1], args[2])
		},
	}
	return t.cmd
}

func (t *TransferCommand) transfer(ctx context.Context, sender, receiver, amount string) error {
	yocto, err := format.ParseNearAmountBig(amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.cli.out, "Sending %s (%s) NEAR to %s from %s\n", amount, yocto, receiver, sender)
	n, err := t.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	outcome, err := n.Account(sender).SendMoney(ctx, receiver, yocto)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.cli.out, inspectResponse(outcome))
	return nil
}

// StakeCommand stake tokens with a validator key
type StakeCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewStakeCommand new stake cmd
func NewStakeCommand(cli *Cli) *cobra.Command {
	s := new(StakeCommand)
	s.cli = cli
	s.cmd = &cobra.Command{
		Use:   "stake <accountId> <stakingKey> <amount>",
		Short: "Create staking transaction",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return s.stake(ctx, args[0], args[1], args[2])
		},
	}
	return s.cmd
}

func (s *StakeCommand) stake(ctx context.Context, accountID, stakingKey, amount string) error {
	yocto, err := format.ParseNearAmountBig(amount)
	if err != nil {
		return err
	}
	publicKey, err := keypair.PublicKeyFromString(stakingKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.cli.out, "Staking %s (%s) on %s with public key = %s.\n", amount, yocto, accountID, stakingKey)
	n, err := s.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	outcome, err := n.Account(accountID).Stake(ctx, publicKey, yocto)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.cli.out, inspectResponse(outcome))
	return nil
}

func init() {
	AddCommand(NewTransferCommand)
	AddCommand(NewStakeCommand)
}
