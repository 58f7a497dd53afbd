package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codehealth/internal/hotspots"
)

var (
	hotspotsFormat string
	hotspotsScope  string
	hotspotsLimit  int
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "Rank files by complexity x churn risk",
	Long: `Rank files by hotspot score, the product of complexity and churn.
Files missing either input are left out rather than ranked at zero.

Examples:
  codehealth hotspots
  codehealth hotspots --limit 50
  codehealth hotspots --scope internal/api
  codehealth hotspots --format json`,
	RunE: runHotspots,
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotsFormat, "format", "human", "Output format (json, human)")
	hotspotsCmd.Flags().StringVar(&hotspotsScope, "scope", "", "Restrict ranking to paths under this prefix")
	hotspotsCmd.Flags().IntVar(&hotspotsLimit, "limit", 20, "Maximum hotspots to return")
	rootCmd.AddCommand(hotspotsCmd)
}

func runHotspots(cmd *cobra.Command, args []string) error {
	res, cfg, _, err := runAnalysis(context.Background())
	if err != nil {
		return err
	}

	scorer := hotspots.NewScorer(hotspots.Thresholds{
		LowMax:    cfg.Hotspots.LowMax,
		MediumMax: cfg.Hotspots.MediumMax,
		HighMax:   cfg.Hotspots.HighMax,
	})
	entries := scorer.Rank(res.Tree, 0)
	if hotspotsScope != "" {
		prefix := strings.TrimSuffix(hotspotsScope, "/") + "/"
		kept := entries[:0]
		for _, e := range entries {
			if strings.HasPrefix(e.Path, prefix) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if hotspotsLimit > 0 && len(entries) > hotspotsLimit {
		entries = entries[:hotspotsLimit]
	}

	if hotspotsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No hotspots: no file has both complexity and churn data.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSCORE\tTIER")
	for _, e := range entries {
		v := e.Hotspots.Cyclomatic
		if v == nil {
			v = e.Hotspots.Cognitive
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%s\n", e.Path, v.Score, v.Tier)
	}
	return tw.Flush()
}
