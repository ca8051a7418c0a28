package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"protogen/internal/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("protogen"),
		kong.Description("Generate the firmware BLE protocol header from protocol.json."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&root); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
