package main

import (
	"fmt"
	"os"

	"github.com/philipp01105/logchain/internal/cli"
)

func main() {
	cmd := cli.NewCmdRoot(cli.DefaultStreams())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Exception caught: %v\n", err)
		os.Exit(1)
	}
}
