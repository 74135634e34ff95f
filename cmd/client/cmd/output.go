package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/xuperchain/near-shell/rpc"
)

// inspectResponse renders a node reply for humans
func inspectResponse(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(s)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

func printKeys(w io.Writer, keys []rpc.AccessKeyInfo) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Public Key", "Nonce", "Permission"})
	table.SetAutoWrapText(false)
	for _, k := range keys {
		table.Append([]string{
			k.PublicKey,
			strconv.FormatUint(k.AccessKey.Nonce, 10),
			k.AccessKey.Permission.String(),
		})
	}
	table.Render()
}
