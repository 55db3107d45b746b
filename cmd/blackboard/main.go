// Command blackboard runs triangle scenarios through the blackboard pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/blackboard/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
