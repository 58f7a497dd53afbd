package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codehealth/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the codehealth version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("codehealth version %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
