package main

import (
	"os"

	"batch-maker/cmd/batchmaker/commands"
	"batch-maker/internal/pkg/common"
)

func main() {
	defer common.Sync()
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
