package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown renders r as a two-column GitHub Flavored Markdown table.
func WriteMarkdown(w io.Writer, r Result) error {
	if _, err := fmt.Fprint(w, "| Field | Value |\n| --- | --- |\n"); err != nil {
		return err
	}
	for _, f := range fields(r) {
		value := escapeMarkdownCell(f.value)
		if f.color != nil {
			value += " (`" + f.color.Hex() + "`)"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s |\n", f.label, value); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
