// Package ui implements the interactive storage setup form and its summary
// rendering.
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"takeout/internal/upload"
)

const (
	completeSymbol = "◇"
	separator      = " · "
	borderTop      = "┌"
	borderSide     = "│"
	borderBottom   = "└"
	checkSymbol    = "✓"
	maskedValue    = "········"
)

// Setup collects the answers of the interactive configuration flow.
type Setup struct {
	ConnectionString string
	Container        string
	Prefix           string
	ZipDir           string
}

func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString("✗").Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString("✗").Foreground(red)
	return t
}

// SetupForm builds the storage setup form. The connection string is echoed
// masked; the container name is validated with the same rules the uploader
// enforces so a typo fails here instead of at the first blob.
func SetupForm(s *Setup) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Azure connection string").
				EchoMode(huh.EchoModePassword).
				Value(&s.ConnectionString).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Container").
				Value(&s.Container).
				Validate(upload.ValidateContainerName),
			huh.NewInput().
				Title("Default prefix").
				Description("Optional path prepended to every upload").
				Value(&s.Prefix),
			huh.NewInput().
				Title("Zip directory").
				Description("Optional default directory with takeout archives").
				Value(&s.ZipDir),
		),
	).WithTheme(FormTheme())
}

// Fields returns the collapsed summary lines for a completed setup. Empty
// optional answers are omitted and the connection string is masked.
func (s Setup) Fields() []Field {
	fields := []Field{
		{Label: "Connection string", Value: maskedValue},
		{Label: "Container", Value: s.Container},
	}
	if s.Prefix != "" {
		fields = append(fields, Field{Label: "Prefix", Value: s.Prefix})
	}
	if s.ZipDir != "" {
		fields = append(fields, Field{Label: "Zip directory", Value: s.ZipDir})
	}
	return fields
}

// Field is one completed answer in a rendered summary.
type Field struct {
	Label string
	Value string
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

// RenderSummary draws the collapsed box shown after the form completes.
func RenderSummary(title string, fields []Field) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		b.WriteString(completeSymbol)
		b.WriteString(" ")
		b.WriteString(f.Label)
		b.WriteString(separator)
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

// RenderSuccess draws the confirmation box after the configuration is saved.
func RenderSuccess(path string, checks []string) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(checkSymbol)
	b.WriteString(" Configuration saved")
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString(" ")
	b.WriteString(path)
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for _, check := range checks {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(checkSymbol)
		b.WriteString(" ")
		b.WriteString(check)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}
