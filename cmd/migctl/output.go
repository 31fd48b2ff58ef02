package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"migration-scaffold/internal/domain"
)

var (
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorSubtle  = lipgloss.Color("#6B7280")

	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError)
	DimStyle     = lipgloss.NewStyle().Foreground(colorSubtle)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

const (
	symbolSuccess = "✓"
	symbolError   = "✗"
)

// migrationJSON は--output json時の出力形式。
type migrationJSON struct {
	Sequence    int    `json:"sequence"`
	Version     string `json:"version"`
	Slug        string `json:"slug"`
	FileName    string `json:"file_name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func toMigrationJSON(m *domain.MigrationFile) migrationJSON {
	out := migrationJSON{
		Sequence:    m.Sequence,
		Version:     m.Version(),
		Slug:        m.Slug,
		FileName:    m.FileName,
		Path:        m.Path,
		Description: m.Description,
	}
	if !m.CreatedAt.IsZero() {
		out.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// printCreated は作成したファイルのパスと手動適用の手順を表示する。
func (c *cli) printCreated(m *domain.MigrationFile) error {
	if c.output == outputJSON {
		return writeJSON(c.stdout, toMigrationJSON(m))
	}

	fmt.Fprintf(c.stdout, "%s Created migration: %s\n\n", SuccessStyle.Render(symbolSuccess), m.Path)
	fmt.Fprintln(c.stdout, BoldStyle.Render("Next steps:"))
	fmt.Fprintf(c.stdout, "  1. Write the SQL for this change in %s\n", m.Path)
	fmt.Fprintln(c.stdout, "  2. Copy the SQL into the database SQL console")
	fmt.Fprintln(c.stdout, "  3. Run it and confirm it completed without errors")
	fmt.Fprintf(c.stdout, "  4. Record %s in %s\n", m.FileName, c.cfg.TrackingFile)
	return nil
}

// printDryRun は作成予定のファイルパスを表示する。
func (c *cli) printDryRun(path string) error {
	if c.output == outputJSON {
		return writeJSON(c.stdout, map[string]any{"path": path, "dry_run": true})
	}
	fmt.Fprintf(c.stdout, "Would create migration: %s %s\n", path, DimStyle.Render("(dry run)"))
	return nil
}

// printError はエラーを標準エラー出力に表示する。
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render(symbolError), err.Error())
}
