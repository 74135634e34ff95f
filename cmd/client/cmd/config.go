package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xuperchain/near-shell/common/log"
)

const (
	// envPrefix 环境变量前缀，如 NEAR_ENV、NEAR_NODEURL
	envPrefix       = "NEAR"
	defaultConfFile = "./conf/near-cli.yaml"
	defaultEnv      = "development"
)

// CliConfig is the shell config, merged from flags, env, config file and the network preset
type CliConfig struct {
	Env            string        `yaml:"env,omitempty" mapstructure:"env"`
	NetworkID      string        `yaml:"networkId,omitempty" mapstructure:"networkId"`
	NodeURL        string        `yaml:"nodeUrl,omitempty" mapstructure:"nodeUrl"`
	WalletURL      string        `yaml:"walletUrl,omitempty" mapstructure:"walletUrl"`
	HelperURL      string        `yaml:"helperUrl,omitempty" mapstructure:"helperUrl"`
	KeyStore       string        `yaml:"keyStore,omitempty" mapstructure:"keyStore"`
	Credentials    string        `yaml:"credentials,omitempty" mapstructure:"credentials"`
	MasterAccount  string        `yaml:"masterAccount,omitempty" mapstructure:"masterAccount"`
	AccountID      string        `yaml:"accountId,omitempty" mapstructure:"accountId"`
	RPCTimeout     time.Duration `yaml:"rpcTimeout,omitempty" mapstructure:"rpcTimeout"`
	Log            log.LogConfig `yaml:"log,omitempty" mapstructure:"log"`
}

// networkPreset is the part of CliConfig selected by NEAR_ENV
type networkPreset struct {
	NetworkID     string
	NodeURL       string
	WalletURL     string
	HelperURL     string
	MasterAccount string
}

var (
	presetTestnet = networkPreset{
		NetworkID: "default",
		NodeURL:   "https://rpc.nearprotocol.com",
		WalletURL: "https://wallet.nearprotocol.com",
		HelperURL: "https://near-contract-helper.onrender.com",
	}
	presetMainnet = networkPreset{
		NetworkID: "mainnet",
		NodeURL:   "https://rpc.mainnet.near.org",
		WalletURL: "https://wallet.near.org",
		HelperURL: "https://helper.mainnet.near.org",
	}
	presetCI = networkPreset{
		NetworkID:     "shared-test",
		NodeURL:       "http://shared-test.nearprotocol.com:3030",
		MasterAccount: "test.near",
	}

	presets = map[string]networkPreset{
		"development": presetTestnet,
		"testnet":     presetTestnet,
		"production":  presetMainnet,
		"mainnet":     presetMainnet,
		"betanet": {
			NetworkID: "betanet",
			NodeURL:   "https://rpc.betanet.near.org",
			WalletURL: "https://wallet.betanet.near.org",
			HelperURL: "https://helper.betanet.near.org",
		},
		"local": {
			NetworkID: "local",
			NodeURL:   "http://localhost:3030",
			WalletURL: "http://localhost:4000/wallet",
		},
		"test": presetCI,
		"ci":   presetCI,
		"ci-betanet": {
			NetworkID:     "shared-test-staging",
			NodeURL:       "http://staging-shared-test.nearprotocol.com:3030",
			MasterAccount: "test.near",
		},
	}
)

// NewCliConfig new a CliConfig with defaults
func NewCliConfig() *CliConfig {
	cfg := &CliConfig{}
	cfg.setDefaultConf()
	return cfg
}

func (nc *CliConfig) setDefaultConf() {
	nc.Env = defaultEnv
	nc.KeyStore = "./neardev"
	if home, err := os.UserHomeDir(); err == nil {
		nc.Credentials = home + "/.near-credentials"
	}
	nc.RPCTimeout = 0
	nc.Log = log.LogConfig{
		Module: "near-shell",
		Fmt:    "logfmt",
		Level:  "warn",
	}
}

// setDefaults registers defaults and the preset of env as the lowest priority values
func (nc *CliConfig) setDefaults(v *viper.Viper, env string) error {
	preset, ok := presets[env]
	if !ok {
		return fmt.Errorf("unknown environment %q", env)
	}
	v.SetDefault("keyStore", nc.KeyStore)
	v.SetDefault("credentials", nc.Credentials)
	v.SetDefault("rpcTimeout", nc.RPCTimeout)
	v.SetDefault("log.module", nc.Log.Module)
	v.SetDefault("log.fmt", nc.Log.Fmt)
	v.SetDefault("log.level", nc.Log.Level)

	v.SetDefault("networkId", preset.NetworkID)
	v.SetDefault("nodeUrl", preset.NodeURL)
	v.SetDefault("walletUrl", preset.WalletURL)
	v.SetDefault("helperUrl", preset.HelperURL)
	v.SetDefault("masterAccount", preset.MasterAccount)
	return nil
}

// LoadConfig merges, by priority: flags, NEAR_* env, config file, env preset, defaults.
// A missing config file is not an error.
func (nc *CliConfig) LoadConfig(v *viper.Viper, fileName string, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return err
		}
		if f := flags.Lookup("logLevel"); f != nil {
			if err := v.BindPFlag("log.level", f); err != nil {
				return err
			}
		}
	}

	if fileName != "" {
		if _, err := os.Stat(fileName); err == nil {
			v.SetConfigFile(fileName)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", fileName, err)
			}
		}
	}

	env := v.GetString("env")
	if env == "" {
		env = nc.Env
	}
	if err := nc.setDefaults(v, env); err != nil {
		return err
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(nc, decodeHook); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	nc.Env = env
	return nil
}
