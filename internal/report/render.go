package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"codehealth/internal/hotspots"
	"codehealth/internal/repotree"
)

// Format selects the output representation.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHuman Format = "human"
)

// Render writes the document to w in the requested format.
func Render(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	case FormatHuman:
		return renderHuman(w, doc)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// renderHuman prints a compact table. Absent values render as "-" so
// "no data" never reads as zero.
func renderHuman(w io.Writer, doc *Document) error {
	fmt.Fprintf(w, "Repository: %s\n", doc.Repo)
	fmt.Fprintf(w, "Run:        %s\n", doc.RunID)
	fmt.Fprintf(w, "Analyzed:   %d files\n\n", doc.FilesAnalyzed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCYCLO\tCOG\tCHURN\tHOTSPOT")

	for _, d := range doc.Dirs {
		fmt.Fprintf(tw, "%s/\t%s\t%s\t%s\t%s\n",
			d.Path,
			kpiCell(d.KPIs, repotree.KPICyclomatic),
			kpiCell(d.KPIs, repotree.KPICognitive),
			kpiCell(d.KPIs, repotree.KPIChurn),
			hotspotCell(d.Hotspots),
		)
	}
	for _, f := range doc.Files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			f.Path,
			kpiCell(f.KPIs, repotree.KPICyclomatic),
			kpiCell(f.KPIs, repotree.KPICognitive),
			kpiCell(f.KPIs, repotree.KPIChurn),
			hotspotCell(f.Hotspots),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, "\nSkipped files:\n")
		for _, warn := range doc.Warnings {
			fmt.Fprintf(w, "  %s [%s] %s\n", warn.Path, warn.Code, warn.Message)
		}
	}
	return nil
}

func kpiCell(kpis map[string]interface{}, name string) string {
	v, ok := kpis[name]
	if !ok {
		return "-"
	}
	f, ok := v.(float64)
	if !ok {
		return "-"
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}

func hotspotCell(h *hotspots.NodeHotspots) string {
	if h == nil || h.Cyclomatic == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f (%s)", h.Cyclomatic.Score, h.Cyclomatic.Tier)
}
