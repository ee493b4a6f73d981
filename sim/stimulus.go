package sim

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadStimulus reads and parses the stimulus script at path.
func LoadStimulus(path string) ([]Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening stimulus")
	}
	defer func() { _ = f.Close() }()
	prog, err := ParseStimulus(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return prog, nil
}

// ParseStimulus parses a stimulus script. Each non-blank line is either
//
//	+N             advance time by N ticks
//	NAMES = VALUES assign VALUES[i] to the net named by NAMES[i]
//
// Net names in an assignment are single characters; values are 0 or 1.
func ParseStimulus(r io.Reader) ([]Instruction, error) {
	var prog []Instruction
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		in, err := parseStimulusLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		prog = append(prog, in)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading stimulus")
	}
	return prog, nil
}

func parseStimulusLine(line string) (Instruction, error) {
	if line[0] == '+' {
		n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrMalformedStimulusLine, "%q: want +N with N >= 0", line)
		}
		return Advance{Ticks: n}, nil
	}

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return nil, errors.Wrapf(ErrMalformedStimulusLine, "%q: want +N or NAMES = VALUES", line)
	}
	names := []rune(strings.TrimSpace(line[:eq]))
	values := []rune(strings.TrimSpace(line[eq+1:]))
	if len(names) != len(values) {
		return nil, errors.Wrapf(ErrMalformedStimulusLine, "%q: %d names for %d values", line, len(names), len(values))
	}
	a := Assign{Assignments: make([]Assignment, len(names))}
	for i, v := range values {
		if v != '0' && v != '1' {
			return nil, errors.Wrapf(ErrMalformedStimulusLine, "%q: value %q for %c is not a bit", line, v, names[i])
		}
		a.Assignments[i] = Assignment{Net: string(names[i]), Value: uint8(v - '0')}
	}
	return a, nil
}
