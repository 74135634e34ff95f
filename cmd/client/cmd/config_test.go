package cmd

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	confFile := filepath.Join(dir, "near-cli.yaml")
	conf := []byte("networkId: filenet\nnodeUrl: http://file.test:3030\nlog:\n  level: info\n")
	if err := ioutil.WriteFile(confFile, conf, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    CliConfig
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"--conf", ""},
			want: CliConfig{
				Env:       "development",
				NetworkID: "default",
				NodeURL:   "https://rpc.nearprotocol.com",
				WalletURL: "https://wallet.nearprotocol.com",
				HelperURL: "https://near-contract-helper.onrender.com",
			},
		},
		{
			name: "env preset",
			env:  map[string]string{"NEAR_ENV": "mainnet"},
			args: []string{"--conf", ""},
			want: CliConfig{
				Env:       "mainnet",
				NetworkID: "mainnet",
				NodeURL:   "https://rpc.mainnet.near.org",
				WalletURL: "https://wallet.near.org",
				HelperURL: "https://helper.mainnet.near.org",
			},
		},
		{
			name: "flag wins over preset",
			args: []string{"--conf", "", "--env", "ci", "--nodeUrl", "http://127.0.0.1:3030", "--rpcTimeout", "5s"},
			want: CliConfig{
				Env:           "ci",
				NetworkID:     "shared-test",
				NodeURL:       "http://127.0.0.1:3030",
				MasterAccount: "test.near",
				RPCTimeout:    5 * time.Second,
			},
		},
		{
			name: "config file",
			args: []string{"--conf", confFile, "--env", "local"},
			want: CliConfig{
				Env:       "local",
				NetworkID: "filenet",
				NodeURL:   "http://file.test:3030",
				WalletURL: "http://localhost:4000/wallet",
			},
		},
		{
			name: "env var wins over config file",
			env:  map[string]string{"NEAR_NETWORKID": "envnet"},
			args: []string{"--conf", confFile},
			want: CliConfig{
				Env:       "development",
				NetworkID: "envnet",
				NodeURL:   "http://file.test:3030",
				WalletURL: "https://wallet.nearprotocol.com",
				HelperURL: "https://near-contract-helper.onrender.com",
			},
		},
		{
			name:    "unknown env",
			args:    []string{"--conf", "", "--env", "moon"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c := NewCli()
			c.Init()
			if err := c.rootCmd.PersistentFlags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			err := c.loadConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := c.RootOptions.CliConfig
			if got.Env != tt.want.Env || got.NetworkID != tt.want.NetworkID || got.NodeURL != tt.want.NodeURL ||
				got.WalletURL != tt.want.WalletURL || got.HelperURL != tt.want.HelperURL ||
				got.MasterAccount != tt.want.MasterAccount || got.RPCTimeout != tt.want.RPCTimeout {
				t.Errorf("config = %+v, want %+v", got, tt.want)
			}
			if got.KeyStore != "./neardev" {
				t.Errorf("keyStore = %q", got.KeyStore)
			}
		})
	}
}

func TestLoadConfigLogLevel(t *testing.T) {
	c := NewCli()
	c.Init()
	if err := c.rootCmd.PersistentFlags().Parse([]string{"--conf", "", "--logLevel", "debug"}); err != nil {
		t.Fatal(err)
	}
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if c.RootOptions.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", c.RootOptions.Log.Level)
	}
	if c.RootOptions.Log.Module != "near-shell" {
		t.Errorf("log module = %q", c.RootOptions.Log.Module)
	}
}
