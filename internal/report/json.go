package report

import (
	"encoding/json"
	"io"
)

type jsonColor struct {
	R   uint16 `json:"r"`
	G   uint16 `json:"g"`
	B   uint16 `json:"b"`
	X11 string `json:"x11"`
	Hex string `json:"hex"`
}

type jsonResult struct {
	Term         string     `json:"term"`
	LatencyMS    *float64   `json:"latency_ms,omitempty"`
	LatencyError string     `json:"latency_error,omitempty"`
	Color        *jsonColor `json:"color,omitempty"`
	Theme        string     `json:"theme,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// WriteJSON renders r as a single indented JSON object.
func WriteJSON(w io.Writer, r Result) error {
	out := jsonResult{Term: r.Term.String()}
	if r.MeasureLatency {
		if r.LatencyErr != nil {
			out.LatencyError = r.LatencyErr.Error()
		} else {
			ms := float64(r.Latency.Microseconds()) / 1000
			out.LatencyMS = &ms
		}
	}
	if r.ColorErr != nil {
		out.Error = r.ColorErr.Error()
	} else {
		out.Color = &jsonColor{
			R:   r.Color.R,
			G:   r.Color.G,
			B:   r.Color.B,
			X11: r.Color.String(),
			Hex: r.Color.Hex(),
		}
		out.Theme = r.Theme().String()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
