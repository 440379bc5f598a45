package main

import (
	"os"

	"alumni-network/internal/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
