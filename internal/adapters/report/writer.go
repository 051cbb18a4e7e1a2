// Package report serializes reasoner results as JSON, the way the teacher's
// ontology package serialized parsed ontologies.
package report

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/anusornc/owl2-reasoner-sub000/reasoner"
)

const writerBufferSize = 256 * 1024

// WriteHierarchyJSON writes a classification result as JSON to w.
func WriteHierarchyJSON(h *reasoner.Hierarchy, w io.Writer, pretty bool) error {
	return writeJSON(h, w, pretty)
}

// WriteProfileReportJSON writes a single profile validation result as JSON to w.
func WriteProfileReportJSON(r reasoner.ProfileReport, w io.Writer, pretty bool) error {
	return writeJSON(r, w, pretty)
}

// WriteProfileReportsJSON writes the combined ValidateAllProfiles result as JSON to w.
func WriteProfileReportsJSON(reports map[string]reasoner.ProfileReport, w io.Writer, pretty bool) error {
	return writeJSON(reports, w, pretty)
}

// QueryResult is the JSON envelope for a single boolean or set-valued query
// (--query consistent|satisfiable|subclassof|equivalent|instances|types), mirroring the
// shape of a ProfileReport: one named operation plus its outcome.
type QueryResult struct {
	Operation string   `json:"operation"`
	Args      []string `json:"args,omitempty"`
	Bool      *bool    `json:"bool,omitempty"`
	Strings   []string `json:"strings,omitempty"`
}

// WriteQueryResultJSON writes a QueryResult as JSON to w.
func WriteQueryResultJSON(q QueryResult, w io.Writer, pretty bool) error {
	return writeJSON(q, w, pretty)
}

func writeJSON(v interface{}, w io.Writer, pretty bool) error {
	bw := bufio.NewWriterSize(w, writerBufferSize)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes v (any of the Write*JSON payload types) to path.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
