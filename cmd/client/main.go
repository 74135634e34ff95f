/*
 * Copyright (c) 2021, Baidu.com, Inc. All Rights Reserved.
 */

package main

import (
	"fmt"
	"os"

	"github.com/xuperchain/near-shell/cmd/client/cmd"
	"github.com/xuperchain/near-shell/common/version"
)

func main() {
	cli := cmd.NewCli()
	cli.SetVer(version.String())

	if err := cli.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cli.AddCommands(cmd.Commands)
	cli.Execute()
}
