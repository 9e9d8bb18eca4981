// Package report renders duplicate groups for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bamsammich/dupescan/internal/engine"
)

// Format selects an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat resolves a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Options controls rendering.
type Options struct {
	Format    Format
	HashLabel string // digest name shown in text output, e.g. "SHA-256"
}

// TotalWasted sums the reclaimable bytes across groups.
func TotalWasted(groups []engine.DuplicateGroup) int64 {
	var total int64
	for _, g := range groups {
		total += g.Wasted()
	}
	return total
}

// Write renders groups to w in the requested format.
func Write(w io.Writer, groups []engine.DuplicateGroup, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return WriteJSON(w, groups)
	case FormatTable:
		return WriteTable(w, groups)
	default:
		return WriteText(w, groups, opts.HashLabel)
	}
}

// WriteJSON writes groups as an ordered JSON array of {hash, size, files}.
// No groups encodes as [].
func WriteJSON(w io.Writer, groups []engine.DuplicateGroup) error {
	if groups == nil {
		groups = []engine.DuplicateGroup{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(groups); err != nil {
		return fmt.Errorf("encode groups: %w", err)
	}
	return nil
}

var bold = color.New(color.Bold)

// WriteText writes the human-readable listing: index, size, hash and members
// of each group with its wasted space. The total goes through WriteSummary.
func WriteText(w io.Writer, groups []engine.DuplicateGroup, hashLabel string) error {
	if hashLabel == "" {
		hashLabel = engine.SHA256.Label()
	}
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "No duplicate files found.")
		return err
	}

	ew := &errWriter{w: w}
	ew.printf("Found %d sets of duplicate files:\n", len(groups))
	for i, g := range groups {
		ew.printf("\n")
		if ew.err == nil {
			_, ew.err = bold.Fprintf(w, "Duplicate set #%d (%s)\n", i+1, FormatSize(g.Size))
		}
		ew.printf("%s: %s\n", hashLabel, g.Hash)
		for _, path := range g.Files {
			ew.printf("  - %s\n", path)
		}
		ew.printf("Wasted space: %s\n", FormatSize(g.Wasted()))
	}
	return ew.err
}

// WriteTable writes one table row per group.
func WriteTable(w io.Writer, groups []engine.DuplicateGroup) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Size", "Copies", "Wasted", "Hash", "Files"})

	for i, g := range groups {
		tw.AppendRow(table.Row{
			i + 1,
			FormatSize(g.Size),
			len(g.Files),
			FormatSize(g.Wasted()),
			shortHash(g.Hash),
			strings.Join(g.Files, "\n"),
		})
		tw.AppendSeparator()
	}
	tw.AppendFooter(table.Row{"", "", "", FormatSize(TotalWasted(groups)), "", fmt.Sprintf("%d groups", len(groups))})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	tw.Render()
	return nil
}

// WriteSummary writes the one-line total used on stderr.
func WriteSummary(w io.Writer, groups []engine.DuplicateGroup) error {
	_, err := fmt.Fprintf(w, "Total wasted space: %s\n", FormatSize(TotalWasted(groups)))
	return err
}

func shortHash(fp engine.Fingerprint) string {
	const n = 12
	if len(fp) <= n {
		return string(fp)
	}
	return string(fp[:n])
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
