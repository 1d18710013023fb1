package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("termscheme failed", "err", err)
		os.Exit(1)
	}
}
