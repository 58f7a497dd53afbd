// Package metrics computes per-function complexity metrics from parsed
// syntax trees, driven entirely by per-language rule tables.
package metrics

// Language identifies a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
)

// FunctionMetric contains complexity metrics for a single function,
// method, or function-like literal.
type FunctionMetric struct {
	// Name is the declared name, or a synthesized "anonymous#<n>" for
	// unnamed functions, numbered in discovery order.
	Name string `json:"name"`

	// StartLine and EndLine locate the function in its file (1-based).
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Cyclomatic is the cyclomatic complexity. Always >= 1.
	Cyclomatic int `json:"cyclomatic"`

	// Cognitive is the nesting-weighted cognitive complexity. Always >= 0.
	Cognitive int `json:"cognitive"`
}

// FileMetric contains the complexity metrics of one source file.
type FileMetric struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`

	// Functions holds per-function results in discovery order.
	Functions []FunctionMetric `json:"functions"`

	// File-level aggregates over Functions.
	TotalCyclomatic int `json:"totalCyclomatic"`
	TotalCognitive  int `json:"totalCognitive"`
	MaxCyclomatic   int `json:"maxCyclomatic"`
	MaxCognitive    int `json:"maxCognitive"`
	FunctionCount   int `json:"functionCount"`
}

// Finalize computes the file-level aggregates from Functions.
func (fm *FileMetric) Finalize() {
	fm.FunctionCount = len(fm.Functions)
	fm.TotalCyclomatic = 0
	fm.TotalCognitive = 0
	fm.MaxCyclomatic = 0
	fm.MaxCognitive = 0

	for _, f := range fm.Functions {
		fm.TotalCyclomatic += f.Cyclomatic
		fm.TotalCognitive += f.Cognitive
		if f.Cyclomatic > fm.MaxCyclomatic {
			fm.MaxCyclomatic = f.Cyclomatic
		}
		if f.Cognitive > fm.MaxCognitive {
			fm.MaxCognitive = f.Cognitive
		}
	}
}
