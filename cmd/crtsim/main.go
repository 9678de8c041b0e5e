package main

import (
	"fmt"
	"os"

	"github.com/san-kum/crtsim/internal/cli"
	"github.com/san-kum/crtsim/internal/gui"
)

func main() {
	if err := cli.NewRootCmd(gui.Run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
