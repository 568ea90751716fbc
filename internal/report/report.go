// Package report renders validation results to a text decklist, a JSON
// report, and a console summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ramonehamilton/deckcheck/internal/deck"
)

// Options holds configuration for report output.
type Options struct {
	// OutPrefix is the output path prefix; ".txt" and ".json" are appended.
	OutPrefix string

	// PrettyJSON enables indented JSON output.
	PrettyJSON bool
}

// Writer renders validation output files.
type Writer struct {
	opts Options
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// CardReport is the per-row resolution detail in the JSON report.
type CardReport struct {
	Name              string   `json:"name"`
	Quantity          int      `json:"quantity"`
	IsCommander       bool     `json:"is_commander"`
	Resolved          bool     `json:"resolved"`
	Set               *string  `json:"set"`
	CollectorNumber   *string  `json:"collector_number"`
	ColorIdentity     []string `json:"color_identity"`
	TypeLine          *string  `json:"type_line"`
	CommanderLegality *string  `json:"commander_legality"`
}

// Report is the structured validation report payload.
type Report struct {
	CommanderNames         []string     `json:"commander_names"`
	CommanderColorIdentity []string     `json:"commander_color_identity"`
	DeckSize               int          `json:"deck_size"`
	Issues                 []string     `json:"issues"`
	Warnings               []string     `json:"warnings"`
	Cards                  []CardReport `json:"cards"`
}

// WriteText writes the plain-text decklist: commander section first, then
// the main deck. Lines carry set and collector number when the row
// resolved to a specific printing. Returns the written path.
func (w *Writer) WriteText(rows []*deck.Row, resolved map[int]*deck.Card) (string, error) {
	lineFor := func(idx int, row *deck.Row) string {
		if card, ok := resolved[idx]; ok && card.SetCode != "" && card.CollectorNumber != "" {
			return fmt.Sprintf("%d %s (%s) %s",
				row.Quantity, card.Name, strings.ToUpper(card.SetCode), card.CollectorNumber)
		}
		return fmt.Sprintf("%d %s", row.Quantity, row.Name)
	}

	lines := []string{"// Commander(s)"}
	for idx, row := range rows {
		if row.IsCommander {
			lines = append(lines, lineFor(idx, row))
		}
	}
	lines = append(lines, "", "// Main")
	for idx, row := range rows {
		if !row.IsCommander {
			lines = append(lines, lineFor(idx, row))
		}
	}

	path := w.opts.OutPrefix + ".txt"
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write decklist: %w", err)
	}
	return path, nil
}

// WriteJSON writes the structured validation report. Returns the written
// path.
func (w *Writer) WriteJSON(rows []*deck.Row, resolved map[int]*deck.Card, result *deck.ValidationResult) (string, error) {
	payload := BuildReport(rows, resolved, result)

	var output []byte
	var err error
	if w.opts.PrettyJSON {
		output, err = json.MarshalIndent(payload, "", "  ")
	} else {
		output, err = json.Marshal(payload)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON report: %w", err)
	}

	path := w.opts.OutPrefix + ".json"
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return "", fmt.Errorf("failed to write JSON report: %w", err)
	}
	return path, nil
}

// BuildReport assembles the structured report payload.
func BuildReport(rows []*deck.Row, resolved map[int]*deck.Card, result *deck.ValidationResult) *Report {
	report := &Report{
		CommanderNames:         result.CommanderNames,
		CommanderColorIdentity: result.CommanderColorID,
		DeckSize:               result.DeckSize,
		Issues:                 result.Issues,
		Warnings:               result.Warnings,
		Cards:                  make([]CardReport, 0, len(rows)),
	}

	for idx, row := range rows {
		entry := CardReport{
			Name:        row.Name,
			Quantity:    row.Quantity,
			IsCommander: row.IsCommander,
		}
		if card, ok := resolved[idx]; ok {
			entry.Resolved = true
			entry.Set = &card.SetCode
			entry.CollectorNumber = &card.CollectorNumber
			entry.ColorIdentity = card.ColorIdentity
			entry.TypeLine = &card.TypeLine
			legality := card.Legality(deck.FormatName)
			entry.CommanderLegality = &legality
		}
		report.Cards = append(report.Cards, entry)
	}

	return report
}

// PrintSummary writes the console summary of a validation run.
func PrintSummary(out io.Writer, result *deck.ValidationResult, txtPath, jsonPath string) {
	fmt.Fprintln(out, "=== Commander Deck Check Report ===")
	if len(result.CommanderNames) > 0 {
		fmt.Fprintf(out, "Commander(s): %s\n", strings.Join(result.CommanderNames, ", "))
		fmt.Fprintf(out, "Color Identity: %v\n", result.CommanderColorID)
	}
	fmt.Fprintf(out, "Deck size: %d\n", result.DeckSize)

	if len(result.Issues) > 0 {
		fmt.Fprintln(out, "Issues (must fix):")
		for _, issue := range result.Issues {
			fmt.Fprintf(out, " - %s\n", issue)
		}
	} else {
		fmt.Fprintln(out, "No blocking issues detected.")
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, " - %s\n", warning)
		}
	}

	fmt.Fprintf(out, "Wrote: %s\n", txtPath)
	fmt.Fprintf(out, "Wrote: %s\n", jsonPath)
}
