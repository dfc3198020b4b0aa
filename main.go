package main

import (
	"context"
	"os"

	"bilingual-pdf/cmd"
	"bilingual-pdf/logger"
)

func main() {
	if err := cmd.RootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
