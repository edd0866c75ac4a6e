package ui

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestSetupFields(t *testing.T) {
	t.Run("connection string is always masked", func(t *testing.T) {
		s := Setup{ConnectionString: "AccountKey=secret", Container: "photos"}

		fields := s.Fields()

		assert.Equal(t, maskedValue, fields[0].Value)
		for _, f := range fields {
			assert.NotContains(t, f.Value, "secret")
		}
	})

	t.Run("empty optional answers are omitted", func(t *testing.T) {
		s := Setup{ConnectionString: "x", Container: "photos"}
		assert.Len(t, s.Fields(), 2)

		s.Prefix = "backup"
		s.ZipDir = "/srv/takeout"
		assert.Len(t, s.Fields(), 4)
	})
}

func TestRenderSummary(t *testing.T) {
	t.Run("completed field renders collapsed with value", func(t *testing.T) {
		fields := []Field{{Label: "Container", Value: "photos"}}
		output := stripANSI(RenderSummary("Storage", fields))

		assert.Contains(t, output, "◇ Container · photos")
	})

	t.Run("title renders after top border", func(t *testing.T) {
		fields := []Field{{Label: "Container", Value: "photos"}}
		output := stripANSI(RenderSummary("Azure storage", fields))

		assert.Contains(t, output, "┌ Azure storage")
		assert.Contains(t, output, "└")
	})

	t.Run("empty-value field produces no output line", func(t *testing.T) {
		fields := []Field{
			{Label: "Container", Value: "photos"},
			{Label: "Prefix"},
		}
		output := stripANSI(RenderSummary("Storage", fields))

		assert.NotContains(t, output, "Prefix")
	})
}

func TestRenderSuccess(t *testing.T) {
	output := stripANSI(RenderSuccess("/home/u/.config/takeout/config.yaml", []string{"connection verified"}))

	assert.Contains(t, output, "✓ Configuration saved")
	assert.Contains(t, output, "/home/u/.config/takeout/config.yaml")
	assert.Contains(t, output, "✓ connection verified")
}
