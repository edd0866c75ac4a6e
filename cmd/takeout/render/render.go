package render

import "fmt"

type Renderer interface {
	RenderStats(view StatsView) string
}

// StatsView is the displayable outcome of one batch operation.
type StatsView struct {
	Title       string
	OperationID string
	Albums      int
	Files       int
	Skipped     int
	Errors      int
	Bytes       int64
	Samples     []ErrorLine
}

type ErrorLine struct {
	Location string
	Cause    string
}

func (v StatsView) HasErrors() bool {
	return v.Errors > 0
}

// FormatBytes renders a byte count in the largest sensible unit.
func FormatBytes(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	}
}
