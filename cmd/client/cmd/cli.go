/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/keystore"
	"github.com/xuperchain/near-shell/login"
	"github.com/xuperchain/near-shell/near"
)

// CommandFunc 代表了一个子命令，用于往Cli注册子命令
type CommandFunc func(c *Cli) *cobra.Command

var (
	// Commands 用于收集所有的子命令，在启动的时候统一往Cli注册
	Commands []CommandFunc
)

// RootOptions 代表全局通用的flag
type RootOptions struct {
	Config string
	CliConfig
}

// Cli 是所有子命令执行的上下文.
type Cli struct {
	RootOptions RootOptions

	rootCmd *cobra.Command
	viper   *viper.Viper
	logger  log.Logger
	out     io.Writer

	// 以下依赖在测试中替换
	connect  func(ctx context.Context, cfg near.Config) (*near.Near, error)
	prompter login.PromptFactory
	opener   login.Opener
}

// NewCli new cli cmd
func NewCli() *Cli {
	rootCmd := &cobra.Command{
		Use:           "near",
		Short:         "Command line tool for NEAR accounts and contracts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	return &Cli{
		RootOptions: RootOptions{CliConfig: *NewCliConfig()},
		rootCmd:     rootCmd,
		viper:       viper.New(),
		logger:      log.DefaultLogger,
		out:         os.Stdout,
		connect:     near.Connect,
		prompter:    login.NewTerminalPrompter,
		opener:      login.BrowserOpener,
	}
}

// SetVer sets the version printed by --version
func (c *Cli) SetVer(ver string) {
	c.rootCmd.Version = ver
}

func (c *Cli) initFlags() error {
	// 参数设置优先级：1.命令行指定 2.环境变量 3.配置文件指定 4.NEAR_ENV 预设 5.默认值
	// 预设和默认值通过 viper default 注入，flag 本身不带默认值
	rootFlag := c.rootCmd.PersistentFlags()
	rootFlag.StringVarP(&c.RootOptions.Config, "conf", "C", defaultConfFile, "shell config file")
	rootFlag.String("env", "", "network preset: development|testnet|production|mainnet|betanet|local|ci (default \"development\")")
	rootFlag.String("networkId", "", "NEAR network id, e.g. default, mainnet")
	rootFlag.String("nodeUrl", "", "NEAR node url")
	rootFlag.String("walletUrl", "", "NEAR wallet url")
	rootFlag.String("helperUrl", "", "NEAR contract helper url")
	rootFlag.String("keyStore", "", "directory of the unencrypted key store (default \"./neardev\")")
	rootFlag.String("masterAccount", "", "account used to create requested accounts")
	rootFlag.String("accountId", "", "unique identifier for the account that will be used")
	rootFlag.Duration("rpcTimeout", 0, "timeout of each node call, 0 waits forever")
	rootFlag.String("logLevel", "", "log level: debug|info|warn|error (default \"warn\")")

	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.loadConfig()
	}
	return nil
}

func (c *Cli) loadConfig() error {
	cfg := &c.RootOptions.CliConfig
	if err := cfg.LoadConfig(c.viper, c.RootOptions.Config, c.rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("load client config failed. config:%s err:%v", c.RootOptions.Config, err)
	}
	logger, err := log.OpenDefaultLog(&cfg.Log)
	if err != nil {
		logger.Warn("open log", "err", err)
	}
	c.logger = logger
	c.logger.Debug("config loaded", "env", cfg.Env, "network", cfg.NetworkID, "node", cfg.NodeURL)
	return nil
}

// Init cmd init entrance
func (c *Cli) Init() error {
	return c.initFlags()
}

// AddCommands add sub commands
func (c *Cli) AddCommands(cmds []CommandFunc) {
	for _, cmd := range cmds {
		c.rootCmd.AddCommand(cmd(c))
	}
}

// Execute exe cmd, errors are printed in red and exit the process with 1
func (c *Cli) Execute() {
	err := c.rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// KeyStore returns the local key store. Writes go to the keyStore directory,
// reads fall back to the shared credentials directory.
func (c *Cli) KeyStore() keystore.KeyStore {
	cfg := c.RootOptions.CliConfig
	primary := keystore.NewUnencryptedFileSystemKeyStore(cfg.KeyStore)
	if cfg.Credentials == "" || cfg.Credentials == cfg.KeyStore {
		return primary
	}
	return keystore.NewMergeKeyStore(primary, keystore.NewUnencryptedFileSystemKeyStore(cfg.Credentials))
}

// NearConfig returns the connection config of the selected network
func (c *Cli) NearConfig() near.Config {
	cfg := c.RootOptions.CliConfig
	return near.Config{
		NetworkID:     cfg.NetworkID,
		NodeURL:       cfg.NodeURL,
		WalletURL:     cfg.WalletURL,
		HelperURL:     cfg.HelperURL,
		MasterAccount: cfg.MasterAccount,
		KeyStore:      c.KeyStore(),
		RPCTimeout:    cfg.RPCTimeout,
		Logger:        c.logger,
	}
}

// Connect dials the selected network
func (c *Cli) Connect(ctx context.Context) (*near.Near, error) {
	return c.connect(ctx, c.NearConfig())
}

// AddCommand add sub cmd
func AddCommand(cmd CommandFunc) {
	Commands = append(Commands, cmd)
}
