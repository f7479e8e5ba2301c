// Tracks the final per-agent inspection counts and the derived
// monkey-business metric.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"math/bits"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Metrics is the result of a completed run.
type Metrics struct {
	RunID          string    `json:"run_id"`
	Policy         string    `json:"policy"`
	Modulus        int64     `json:"modulus,omitempty"` // 0 unless the modulus policy ran
	Rounds         int       `json:"rounds"`
	Inspections    []uint64  `json:"inspections"` // indexed by agent id
	MonkeyBusiness uint64    `json:"monkey_business"`
	MaxItem        int64     `json:"max_item"` // largest item value thrown during the run
	FinalQueues    [][]int64 `json:"final_queues"`
}

// MonkeyBusiness sorts counts descending and multiplies the two largest.
// With a single count it returns that count. Products beyond uint64 return
// ErrOverflow.
func MonkeyBusiness(counts []uint64) (uint64, error) {
	if len(counts) == 0 {
		return 0, fmt.Errorf("%w: no inspection counts", ErrInvalidConfig)
	}
	sorted := slices.Clone(counts)
	slices.SortFunc(sorted, func(a, b uint64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	if len(sorted) == 1 {
		return sorted[0], nil
	}
	hi, lo := bits.Mul64(sorted[0], sorted[1])
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d * %d exceeds uint64", ErrOverflow, sorted[0], sorted[1])
	}
	return lo, nil
}

// ValidReportFormats is the set of recognized report formats.
var ValidReportFormats = map[string]bool{"": true, "text": true, "json": true}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metricStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// SaveResults writes the metrics to w as "text" (the default) or "json".
// styled enables terminal colors for text output.
func (m *Metrics) SaveResults(w io.Writer, format string, styled bool) error {
	switch format {
	case "", "text":
		return m.writeText(w, styled)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown report format %q; valid: text, json", ErrInvalidConfig, format)
	}
}

func (m *Metrics) writeText(w io.Writer, styled bool) error {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}
	policy := m.Policy
	if m.Modulus > 0 {
		policy = fmt.Sprintf("%s (M=%s)", m.Policy, humanize.Comma(m.Modulus))
	}

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("%s\n", render(headerStyle, "=== Simulation Metrics ==="))
	printf("Run ID               : %s\n", m.RunID)
	printf("Overflow Policy      : %s\n", policy)
	printf("Rounds               : %s\n", humanize.Comma(int64(m.Rounds)))
	for id, n := range m.Inspections {
		printf("Agent %-3d inspected  : %s\n", id, commaUint(n))
	}
	printf("Max Item Thrown      : %s\n", humanize.Comma(m.MaxItem))
	printf("Monkey Business      : %s\n", render(metricStyle, commaUint(m.MonkeyBusiness)))
	return err
}

func commaUint(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}
