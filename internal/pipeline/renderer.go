package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ppiankov/supplycheck/internal/model"
)

// Renderer prints reports as human-readable text
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderSummary prints the counts, the sample and the verification line
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) error {
	sample := report.Sample
	if sample == nil {
		sample = []model.SampleEntry{}
	}

	// Ids are printed as they appear in the dataset, without HTML escaping
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sample); err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}

	fmt.Fprintf(w, "Mapped: %d, Fallback: %d\n", report.Mapped, report.Fallback)
	fmt.Fprintln(w, "Sample mapped cards (non-normal):")
	fmt.Fprint(w, buf.String())

	if report.Verified() {
		fmt.Fprintln(w, "Verification SUCCESS: Mapping logic works as expected.")
	} else {
		fmt.Fprintln(w, "Verification FAILED: No cards were mapped using the map.")
	}

	return nil
}

// RenderDiagnostics prints fetch metadata, index statistics and the number
// of cards per supply type, largest first
func (r *Renderer) RenderDiagnostics(w io.Writer, report *model.Report) {
	for _, meta := range report.Fetches {
		fmt.Fprintf(w, "Fetched %s: %d, %d bytes", meta.URL, meta.StatusCode, meta.Bytes)
		if meta.ContentType != "" {
			fmt.Fprintf(w, ", %s", meta.ContentType)
		}
		if meta.ETag != "" {
			fmt.Fprintf(w, ", etag %s", meta.ETag)
		}
		fmt.Fprintln(w)
		if meta.FinalURL != "" && meta.FinalURL != meta.URL {
			fmt.Fprintf(w, "  redirected to %s\n", meta.FinalURL)
		}
	}

	fmt.Fprintf(w, "Supply map: %d ids from %d records", report.Indexed, report.Supplies)
	if report.Skipped > 0 {
		fmt.Fprintf(w, " (skipped %d malformed)", report.Skipped)
	}
	fmt.Fprintln(w)

	types := make([]string, 0, len(report.ByType))
	for t := range report.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		ci, cj := report.ByType[types[i]], report.ByType[types[j]]
		if ci != cj {
			return ci > cj
		}
		return types[i] < types[j]
	})

	fmt.Fprintln(w, "Cards by supply type:")
	for _, t := range types {
		marker := ""
		if !model.IsKnownSupplyType(t) {
			marker = " (unknown type)"
		}
		fmt.Fprintf(w, "  %-28s %-18s %6d%s\n", t, model.SupplyTypeLabel(t), report.ByType[t], marker)
	}
}
