// Package format implements the display conventions for chart labels:
// value precision by magnitude, percentage detection and text wrapping.
package format

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// NotAvailable is the label for missing values.
const NotAvailable = "N/A"

// AutoPrecision asks FormatValue to choose decimals from the value magnitude.
const AutoPrecision = -1

// ValueFormat overrides label formatting for one column.
type ValueFormat struct {
	IsPercentage bool `yaml:"is_percentage" json:"is_percentage"`
	// Precision is the number of decimals; nil selects it automatically.
	Precision *int `yaml:"precision,omitempty" json:"precision,omitempty"`
}

// PrecisionOrAuto returns the configured precision or AutoPrecision.
func (v ValueFormat) PrecisionOrAuto() int {
	if v.Precision == nil {
		return AutoPrecision
	}
	return *v.Precision
}

// FormatValue renders a bar value label.
func FormatValue(value float64, isPercentage bool, precision int) string {
	if math.IsNaN(value) {
		return NotAvailable
	}

	abs := math.Abs(value)

	if isPercentage {
		if precision < 0 {
			if abs < 0.01 {
				precision = 2
			} else {
				precision = 1
			}
		}
		return fmt.Sprintf("%.*f%%", precision, value*100)
	}

	if math.Abs(value-math.Round(value)) < 0.01 && value >= 10 {
		return commaInt(value)
	}

	if precision < 0 {
		switch {
		case abs < 0.01:
			precision = 4
		case abs < 0.1:
			precision = 3
		case abs < 1:
			precision = 2
		case abs < 10:
			precision = 1
		case math.Mod(abs, 1) < 0.01:
			precision = 0
		default:
			precision = 2
		}
	}

	if precision == 0 {
		return commaInt(value)
	}
	return fmt.Sprintf("%.*f", precision, value)
}

// commaInt truncates value toward zero and adds thousands separators.
func commaInt(value float64) string {
	if math.IsInf(value, 0) {
		return fmt.Sprintf("%.0f", value)
	}
	if math.Abs(value) < math.MaxInt64 {
		return humanize.Comma(int64(value))
	}
	n, _ := big.NewFloat(value).Int(nil)
	return humanize.BigComma(n)
}

// IsPercentageColumn reports whether a column name marks percentage data.
func IsPercentageColumn(name string) bool {
	return strings.Contains(name, "%")
}

// PercentTick renders a y-axis tick for percentage data.
func PercentTick(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// CompactValue renders the short labels used on grouped exploration plots.
func CompactValue(v float64) string {
	if math.Abs(v) < 1000 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

// AxisLabel picks a y-axis label from the column contents.
func AxisLabel(values []float64, isPercentage bool) string {
	if isPercentage {
		return "Percentage"
	}
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.Abs(v-math.Round(v)) >= 0.01 {
			return "Value"
		}
	}
	return "Count"
}

// WrapText greedily wraps text on word boundaries to lines of at most width
// characters. Words longer than width are broken.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > 0 {
			if len(cur) == 0 {
				if len(word) <= width {
					cur, word = word, nil
					break
				}
				lines = append(lines, string(word[:width]))
				word = word[width:]
				continue
			}
			if len(cur)+1+len(word) <= width {
				cur = append(append(cur, ' '), word...)
				word = nil
				break
			}
			if len(word) > width {
				if room := width - len(cur) - 1; room > 0 {
					cur = append(append(cur, ' '), word[:room]...)
					word = word[room:]
				}
			}
			lines = append(lines, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return strings.Join(lines, "\n")
}

// Humanize turns a snake_case column name into a title-cased label.
func Humanize(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	out := make([]rune, 0, len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				out = append(out, unicode.ToLower(r))
			} else {
				out = append(out, unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		out = append(out, r)
		prevLetter = false
	}
	return string(out)
}
