// Package report renders detection results for the termbg check program.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/phyten/termbg"
)

// Result collects what one run of the check program detected. A zero
// Latency with MeasureLatency unset means latency was not requested.
type Result struct {
	Term           termbg.Term
	MeasureLatency bool
	Latency        time.Duration
	LatencyErr     error
	Color          termbg.RGB
	ColorErr       error
}

// Failed reports whether color detection failed.
func (r Result) Failed() bool { return r.ColorErr != nil }

// Theme classifies the detected color. It is meaningless when Failed.
func (r Result) Theme() termbg.Theme { return termbg.Classify(r.Color) }

// Write renders r in format: "text", "json" or "markdown". The renderer
// styles text output and may be nil for the other formats.
func Write(w io.Writer, r Result, format string, renderer *lipgloss.Renderer) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return WriteText(w, r, renderer)
	case "json":
		return WriteJSON(w, r)
	case "markdown":
		return WriteMarkdown(w, r)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type field struct {
	label string
	value string
	color *termbg.RGB
	err   bool
}

func fields(r Result) []field {
	out := []field{{label: "Term", value: r.Term.String()}}
	if r.MeasureLatency {
		if r.LatencyErr != nil {
			out = append(out, field{label: "Latency", value: failure(r.LatencyErr), err: true})
		} else {
			out = append(out, field{label: "Latency", value: r.Latency.String()})
		}
	}
	if r.ColorErr != nil {
		out = append(out,
			field{label: "Color", value: failure(r.ColorErr), err: true},
			field{label: "Theme", value: failure(r.ColorErr), err: true},
		)
		return out
	}
	c := r.Color
	out = append(out,
		field{label: "Color", value: c.String(), color: &c},
		field{label: "Theme", value: r.Theme().String()},
	)
	return out
}

func failure(err error) string {
	return "detection failed: " + err.Error()
}
