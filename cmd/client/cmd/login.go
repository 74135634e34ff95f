/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xuperchain/near-shell/login"
	"github.com/xuperchain/near-shell/near"
	"github.com/xuperchain/near-shell/rpc"
)

// LoginCommand authorizes a new local key through the wallet
type LoginCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewLoginCommand new login cmd
func NewLoginCommand(cli *Cli) *cobra.Command {
	l := new(LoginCommand)
	l.cli = cli
	l.cmd = &cobra.Command{
		Use:   "login",
		Short: "Log in with the NEAR wallet, the authorized key is stored locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return l.login(ctx)
		},
	}
	return l.cmd
}

func (l *LoginCommand) login(ctx context.Context) error {
	cfg := l.cli.RootOptions.CliConfig
	lister := &lazyLister{cli: l.cli}
	defer lister.Close()

	coordinator := login.NewCoordinator(
		login.Config{
			NetworkID: cfg.NetworkID,
			NodeURL:   cfg.NodeURL,
			WalletURL: cfg.WalletURL,
		},
		lister,
		l.cli.KeyStore(),
		l.cli.prompter,
		login.WithOpener(l.cli.opener),
		login.WithOutput(l.cli.out),
		login.WithLogger(l.cli.logger),
	)
	outcome, err := coordinator.Run(ctx)
	if err != nil {
		return err
	}
	l.cli.logger.Debug("login finished", "outcome", outcome, "state", coordinator.State())
	return nil
}

// lazyLister dials the node on the first access key query, so a login that
// never gets to verification does not need a reachable node
type lazyLister struct {
	cli *Cli
	n   *near.Near
}

func (l *lazyLister) ViewAccessKeyList(ctx context.Context, accountID string) (*rpc.AccessKeyList, error) {
	if l.n == nil {
		n, err := l.cli.Connect(ctx)
		if err != nil {
			return nil, err
		}
		l.n = n
	}
	return l.n.Provider.ViewAccessKeyList(ctx, accountID)
}

func (l *lazyLister) Close() {
	if l.n != nil {
		l.n.Close()
	}
}

func init() {
	AddCommand(NewLoginCommand)
}
