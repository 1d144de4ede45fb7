// Package gcode parses the G-code lines the display handlers queue.
package gcode

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNoNumber = errors.New("gcode: command without number")
	ErrBadValue = errors.New("gcode: malformed parameter value")
)

// Command is a parsed G-code line
type Command struct {
	Type       byte             // 'G', 'M', 'T', 0 for comment-only lines
	Number     int              // e.g. 28 for G28
	Parameters map[byte]float64 // X, Y, Z, E, F, S, ...; flags without value are 0
	Comment    string
}

// Code returns the command word, e.g. "G28"
func (cmd *Command) Code() string {
	if cmd.Type == 0 {
		return ""
	}
	return string(cmd.Type) + strconv.Itoa(cmd.Number)
}

func (cmd *Command) String() string {
	return fmt.Sprintf("%s %v", cmd.Code(), cmd.Parameters)
}

// Has checks if a parameter exists in the command
func (cmd *Command) Has(param byte) bool {
	_, ok := cmd.Parameters[param]
	return ok
}

// Get gets a parameter value, or returns the default if not present
func (cmd *Command) Get(param byte, defaultValue float64) float64 {
	if val, ok := cmd.Parameters[param]; ok {
		return val
	}
	return defaultValue
}

// Parser handles G-code parsing. Parameters may be separated by spaces or
// packed ("G0F600Z5.00", "G28XY").
type Parser struct{}

// NewParser creates a new G-code parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine parses a single line of G-code. Blank lines return nil.
func (p *Parser) ParseLine(line string) (*Command, error) {
	i := skipSpace(line, 0)
	if i >= len(line) {
		return nil, nil
	}

	cmd := &Command{Parameters: make(map[byte]float64)}

	if line[i] == ';' || line[i] == '(' {
		cmd.Comment = line[i:]
		return cmd, nil
	}

	// Command type (G, M, T)
	switch c := toUpper(line[i]); c {
	case 'G', 'M', 'T':
		cmd.Type = c
		i++
		end := scanNumber(line, i, false)
		if end == i {
			return nil, fmt.Errorf("%w: %q", ErrNoNumber, line)
		}
		n, err := strconv.Atoi(line[i:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNoNumber, line)
		}
		cmd.Number = n
		i = end
	}

	for {
		i = skipSpace(line, i)
		if i >= len(line) {
			break
		}
		if line[i] == ';' || line[i] == '(' {
			cmd.Comment = line[i:]
			break
		}
		if !isLetter(line[i]) {
			i++
			continue
		}

		letter := toUpper(line[i])
		i++
		end := scanNumber(line, i, true)
		if end == i {
			cmd.Parameters[letter] = 0
			continue
		}
		value, err := strconv.ParseFloat(line[i:end], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %c%s", ErrBadValue, letter, line[i:end])
		}
		cmd.Parameters[letter] = value
		i = end
	}

	return cmd, nil
}

// scanNumber returns the end of the number starting at pos, or pos when
// there is none.
func scanNumber(s string, pos int, fraction bool) int {
	i := pos
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && (isDigit(s[i]) || (fraction && s[i] == '.')) {
		if isDigit(s[i]) {
			digits++
		}
		i++
	}
	if digits == 0 {
		return pos
	}
	return i
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\r') {
		pos++
	}
	return pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isLetter checks if a byte is a letter
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// toUpper converts a byte to uppercase
func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
