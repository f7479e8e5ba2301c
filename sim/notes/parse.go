// Package notes parses the textual agent notes into sim.AgentSpec records.
//
// A notes file is a sequence of blocks separated by blank lines:
//
//	Agent 0:
//	  Starting items: 79, 98
//	  Operation: new = old * 19
//	  Test: divisible by 23
//	    If true: throw to agent 2
//	    If false: throw to agent 3
//
// "Monkey" is accepted in place of "Agent". The parser is purely syntactic;
// id density, divisor and routing checks belong to sim.ValidateAgentSpecs.
package notes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/keepaway-sim/keepaway/sim"
)

var (
	headerRe    = regexp.MustCompile(`^(?i:agent|monkey) (\d+):$`)
	itemsRe     = regexp.MustCompile(`^Starting items:\s*(.*)$`)
	operationRe = regexp.MustCompile(`^Operation: new = old ([+*]) (old|\d+)$`)
	testRe      = regexp.MustCompile(`^Test: divisible by (\d+)$`)
	ifTrueRe    = regexp.MustCompile(`^If true: throw to (?i:agent|monkey) (\d+)$`)
	ifFalseRe   = regexp.MustCompile(`^If false: throw to (?i:agent|monkey) (\d+)$`)
)

// LoadFile reads and parses a notes file.
func LoadFile(path string) ([]sim.AgentSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads every agent block from r, in order. Errors wrap
// sim.ErrMalformedSpec and name the offending line.
func Parse(r io.Reader) ([]sim.AgentSpec, error) {
	var (
		specs  []sim.AgentSpec
		block  []numberedLine
		lineNo int
	)
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		spec, err := parseBlock(block)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
		block = block[:0]
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, numberedLine{no: lineNo, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no agent blocks found", sim.ErrMalformedSpec)
	}
	return specs, nil
}

type numberedLine struct {
	no   int
	text string
}

func malformed(l numberedLine, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", sim.ErrMalformedSpec, l.no, fmt.Sprintf(format, args...))
}

// parseBlock expects exactly six lines in the fixed order shown in the
// package comment.
func parseBlock(lines []numberedLine) (sim.AgentSpec, error) {
	var spec sim.AgentSpec
	if len(lines) != 6 {
		return spec, malformed(lines[0], "agent block has %d lines, want 6", len(lines))
	}

	m := headerRe.FindStringSubmatch(lines[0].text)
	if m == nil {
		return spec, malformed(lines[0], "expected \"Agent <id>:\", got %q", lines[0].text)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return spec, malformed(lines[0], "agent id %q: %v", m[1], err)
	}
	spec.ID = id

	m = itemsRe.FindStringSubmatch(lines[1].text)
	if m == nil {
		return spec, malformed(lines[1], "expected \"Starting items: ...\", got %q", lines[1].text)
	}
	if spec.StartingItems, err = parseItems(m[1]); err != nil {
		return spec, malformed(lines[1], "%v", err)
	}

	m = operationRe.FindStringSubmatch(lines[2].text)
	if m == nil {
		return spec, malformed(lines[2], "expected \"Operation: new = old <+|*> <int|old>\", got %q", lines[2].text)
	}
	if spec.Transform, err = parseTransform(m[1], m[2]); err != nil {
		return spec, malformed(lines[2], "%v", err)
	}

	m = testRe.FindStringSubmatch(lines[3].text)
	if m == nil {
		return spec, malformed(lines[3], "expected \"Test: divisible by <n>\", got %q", lines[3].text)
	}
	if spec.Divisor, err = strconv.ParseInt(m[1], 10, 64); err != nil {
		return spec, malformed(lines[3], "divisor %q: %v", m[1], err)
	}

	if spec.TargetIfTrue, err = parseTarget(lines[4], ifTrueRe, "If true"); err != nil {
		return spec, err
	}
	if spec.TargetIfFalse, err = parseTarget(lines[5], ifFalseRe, "If false"); err != nil {
		return spec, err
	}
	return spec, nil
}

func parseItems(list string) ([]int64, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []int64{}, nil
	}
	fields := strings.Split(list, ",")
	items := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %q: %v", strings.TrimSpace(f), err)
		}
		items = append(items, v)
	}
	return items, nil
}

func parseTransform(op, operand string) (sim.Transform, error) {
	if operand == "old" {
		if op == "*" {
			return sim.Square(), nil
		}
		return sim.Transform{}, fmt.Errorf("\"old %s old\" is not a supported operation", op)
	}
	k, err := strconv.ParseInt(operand, 10, 64)
	if err != nil {
		return sim.Transform{}, fmt.Errorf("operand %q: %v", operand, err)
	}
	if op == "+" {
		return sim.Add(k), nil
	}
	return sim.Multiply(k), nil
}

func parseTarget(l numberedLine, re *regexp.Regexp, label string) (int, error) {
	m := re.FindStringSubmatch(l.text)
	if m == nil {
		return 0, malformed(l, "expected \"%s: throw to agent <id>\", got %q", label, l.text)
	}
	target, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, malformed(l, "target %q: %v", m[1], err)
	}
	return target, nil
}
