package config

import "strings"

// MergeSettings applies layers over base in order; later layers win.
func MergeSettings(base Settings, layers ...Config) Settings {
	out := base
	for _, layer := range layers {
		out.Timeout = ResolveDuration(out.Timeout, layer.Detect.Timeout)
		out.LatencyTimeout = ResolveDuration(out.LatencyTimeout, layer.Detect.LatencyTimeout)
		out.Latency = ResolveBool(out.Latency, layer.Detect.Latency)
		out.Color = ResolveAndTrim(out.Color, layer.Report.Color)
		out.Format = ResolveAndTrim(out.Format, layer.Report.Format)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	if strings.TrimSpace(out.Format) == "" {
		out.Format = "text"
	}
	return out
}
