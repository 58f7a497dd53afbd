package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codehealth/internal/metrics"
	"codehealth/internal/treesitter"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and file extensions",
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	registry, err := metrics.DefaultRegistry()
	if err != nil {
		return err
	}
	factory := metrics.NewFactory(registry)

	if !treesitter.Available() {
		fmt.Fprintln(os.Stderr, "note: this build has no parser (cgo disabled); analysis is unavailable")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tEXTENSIONS")
	for _, lang := range registry.Languages() {
		exts := ""
		for _, ext := range factory.SupportedExtensions() {
			if l, _ := metrics.LanguageFromExtension(ext); l == lang {
				if exts != "" {
					exts += " "
				}
				exts += ext
			}
		}
		fmt.Fprintf(tw, "%s\t%s\n", lang, exts)
	}
	return tw.Flush()
}
