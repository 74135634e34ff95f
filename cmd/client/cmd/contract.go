/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/xuperchain/near-shell/rpc"
	"github.com/xuperchain/near-shell/utils/format"
)

var (
	// ErrNoAccountID the command signs but no --accountId was given
	ErrNoAccountID = errors.New("missing --accountId")
	// ErrInvalidArgs contract args are not a json object
	ErrInvalidArgs = errors.New("contract args must be a json object")
)

// 只读调用不需要签名，没有指定账户时用这个账户名
const defaultViewAccount = "register.near"

// callArgs checks the json args of a contract call, empty means {}
func callArgs(args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "" {
		return "", []byte("{}"), nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(args[0]), &obj); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return args[0], []byte(args[0]), nil
}

// ContractDeployCommand deploy wasm code to an account
type ContractDeployCommand struct {
	cli *Cli
	cmd *cobra.Command

	wasmFile string
}

// NewContractDeployCommand new deploy cmd
func NewContractDeployCommand(cli *Cli) *cobra.Command {
	c := new(ContractDeployCommand)
	c.cli = cli
	c.cmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy your smart contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return c.deploy(ctx)
		},
	}
	c.addFlags()
	return c.cmd
}

func (c *ContractDeployCommand) addFlags() {
	c.cmd.Flags().StringVar(&c.wasmFile, "wasmFile", "./out/main.wasm", "path to wasm file to deploy")
}

func (c *ContractDeployCommand) deploy(ctx context.Context) error {
	cfg := c.cli.RootOptions.CliConfig
	if cfg.AccountID == "" {
		return ErrNoAccountID
	}
	fmt.Fprintf(c.cli.out, "Starting deployment. Account id: %s, node: %s, helper: %s, file: %s\n",
		cfg.AccountID, cfg.NodeURL, cfg.HelperURL, c.wasmFile)
	code, err := ioutil.ReadFile(c.wasmFile)
	if err != nil {
		return err
	}
	n, err := c.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	_, err = n.Account(cfg.AccountID).DeployContract(ctx, code)
	return err
}

// ContractCallCommand schedule a change method call
type ContractCallCommand struct {
	cli *Cli
	cmd *cobra.Command

	amount string
	gas    uint64
}

// NewContractCallCommand new call cmd
func NewContractCallCommand(cli *Cli) *cobra.Command {
	c := new(ContractCallCommand)
	c.cli = cli
	c.cmd = &cobra.Command{
		Use:   "call <contractName> <methodName> [args]",
		Short: "Schedule smart contract call which can modify state",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return c.call(ctx, args[0], args[1], args[2:])
		},
	}
	c.addFlags()
	return c.cmd
}

func (c *ContractCallCommand) addFlags() {
	c.cmd.Flags().StringVar(&c.amount, "amount", "0", "number of tokens to attach")
	c.cmd.Flags().Uint64Var(&c.gas, "gas", 0, "max amount of gas this call can use, 0 uses the default")
}

func (c *ContractCallCommand) call(ctx context.Context, contractName, methodName string, rest []string) error {
	cfg := c.cli.RootOptions.CliConfig
	if cfg.AccountID == "" {
		return ErrNoAccountID
	}
	shown, args, err := callArgs(rest)
	if err != nil {
		return err
	}
	deposit, err := format.ParseNearAmountBig(c.amount)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Scheduling a call: %s.%s(%s)", contractName, methodName, shown)
	if deposit.Sign() > 0 {
		msg += fmt.Sprintf(" with attached %s NEAR", deposit)
	}
	fmt.Fprintln(c.cli.out, msg)

	n, err := c.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	outcome, err := n.Account(cfg.AccountID).FunctionCall(ctx, contractName, methodName, args, c.gas, deposit)
	if err != nil {
		return err
	}
	result, err := rpc.GetTransactionLastResult(outcome)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.cli.out, inspectResponse(result))
	return nil
}

// ContractViewCommand run a read only method
type ContractViewCommand struct {
	cli *Cli
	cmd *cobra.Command
}

// NewContractViewCommand new view cmd
func NewContractViewCommand(cli *Cli) *cobra.Command {
	c := new(ContractViewCommand)
	c.cli = cli
	c.cmd = &cobra.Command{
		Use:   "view <contractName> <methodName> [args]",
		Short: "Make smart contract call which can view state",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.TODO()
			return c.view(ctx, args[0], args[1], args[2:])
		},
	}
	return c.cmd
}

func (c *ContractViewCommand) view(ctx context.Context, contractName, methodName string, rest []string) error {
	shown, args, err := callArgs(rest)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.cli.out, "View call: %s.%s(%s)\n", contractName, methodName, shown)

	cfg := c.cli.RootOptions.CliConfig
	accountID := cfg.AccountID
	if accountID == "" {
		accountID = cfg.MasterAccount
	}
	if accountID == "" {
		accountID = defaultViewAccount
	}
	n, err := c.cli.Connect(ctx)
	if err != nil {
		return err
	}
	defer n.Close()

	result, err := n.Account(accountID).ViewFunction(ctx, contractName, methodName, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.cli.out, inspectResponse(result))
	return nil
}

// CleanCommand remove the build output
type CleanCommand struct {
	cli *Cli
	cmd *cobra.Command

	outDir string
}

// NewCleanCommand new clean cmd
func NewCleanCommand(cli *Cli) *cobra.Command {
	c := new(CleanCommand)
	c.cli = cli
	c.cmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove the build output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.clean()
		},
	}
	c.cmd.Flags().StringVar(&c.outDir, "outDir", "./out", "build output directory")
	return c.cmd
}

func (c *CleanCommand) clean() error {
	if err := os.RemoveAll(c.outDir); err != nil {
		return err
	}
	fmt.Fprintln(c.cli.out, "Clean complete.")
	return nil
}

func init() {
	AddCommand(NewContractDeployCommand)
	AddCommand(NewContractCallCommand)
	AddCommand(NewContractViewCommand)
	AddCommand(NewCleanCommand)
}
