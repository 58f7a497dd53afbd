package main

import (
	"os"

	"codehealth/internal/logging"
)

func main() {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command execution failed", logging.Fields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
