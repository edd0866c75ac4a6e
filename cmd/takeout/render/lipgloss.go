package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer

	titleStyle  lipgloss.Style
	faintStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	sampleStyle lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:       width,
		r:           r,
		titleStyle:  r.NewStyle().Bold(true),
		faintStyle:  r.NewStyle().Faint(true),
		errorStyle:  r.NewStyle().Foreground(lipgloss.Color("9")),
		sampleStyle: r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) RenderStats(view StatsView) string {
	var sb strings.Builder

	sb.WriteString(r.titleStyle.Render(view.Title))
	if view.OperationID != "" {
		sb.WriteString(r.faintStyle.Render(" (op " + view.OperationID + ")"))
	}
	sb.WriteString("\n")

	summary := fmt.Sprintf("  albums %d · files %d · skipped %d · %s",
		view.Albums, view.Files, view.Skipped, FormatBytes(view.Bytes))
	sb.WriteString(summary)
	sb.WriteString("\n")

	if view.HasErrors() {
		sb.WriteString(r.errorStyle.Render(fmt.Sprintf("  errors %d", view.Errors)))
		sb.WriteString("\n")
		for _, sample := range view.Samples {
			sb.WriteString(r.sampleStyle.Render("    " + sample.Location + ": " + sample.Cause))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
