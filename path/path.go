package path

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrMissingClosingBracket is returned when a '[' has no matching ']'.
var ErrMissingClosingBracket = errors.New("missing closing bracket")

// ErrEmptyIndex is returned for "[]".
var ErrEmptyIndex = errors.New("empty numerical index")

// ErrInvalidIndex is returned when the text between brackets does not start
// with an integer.
var ErrInvalidIndex = errors.New("invalid numerical index")

var errNotANumber = errors.New("parsed NaN")

// keyEscapes are the characters a backslash may escape inside a key.
const keyEscapes = `.[\`

// Step is a single access step: either a map key or a sequence index.
// Index steps too large for an int keep their decimal text in key and a
// saturated index, so they read Absent from any sequence.
type Step struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a key step.
func Key(key string) Step {
	return Step{key: key}
}

// Index returns an index step.
func Index(index int) Step {
	return Step{index: index, isIndex: true}
}

// IsIndex reports whether the step is an index step.
func (s Step) IsIndex() bool {
	return s.isIndex
}

// Key returns the key of a key step, or the decimal form of an index step.
func (s Step) Key() string {
	if s.isIndex && s.key == "" {
		return strconv.Itoa(s.index)
	}

	return s.key
}

// Index returns the index of an index step.
// The second result is false for key steps.
func (s Step) Index() (int, bool) {
	return s.index, s.isIndex
}

// MarshalJSON renders key steps as JSON strings and index steps as numbers.
func (s Step) MarshalJSON() ([]byte, error) {
	if s.isIndex {
		return []byte(s.Key()), nil
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s.key)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s Step) String() string {
	out, _ := s.MarshalJSON()

	return string(out)
}

// Path is an ordered list of access steps, outermost first.
type Path []Step

// String renders the path as a JSON array, e.g. ["items",1].
func (p Path) String() string {
	if len(p) == 0 {
		return "[]"
	}

	parts := make([]string, len(p))
	for i, step := range p {
		parts[i] = step.String()
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// Parse splits a field path such as "users[0].name" into access steps.
//
// Keys are separated by unescaped '.' and bracketed integers are index steps.
// A backslash escapes '.', '[' and '\' inside keys. A single leading '.' is
// ignored and the empty path yields no steps.
func Parse(fieldPath string) (Path, error) {
	steps := Path{}

	if fieldPath == "" {
		return steps, nil
	}

	index := 0
	if fieldPath[0] == '.' {
		index = 1
	}

	for index < len(fieldPath) {
		if fieldPath[index] == '[' {
			step, next, err := parseIndex(fieldPath, index)
			if err != nil {
				return nil, err
			}

			steps = append(steps, step)
			index = next

			continue
		}

		next := nextDelimiter(fieldPath, index)
		steps = append(steps, Key(RemoveEscapesIn(fieldPath[index:next], keyEscapes)))

		if next < len(fieldPath) && fieldPath[next] == '.' {
			next++
		}

		index = next
	}

	return steps, nil
}

// parseIndex reads the bracketed index that opens at start and returns the
// step plus the position just past the closing bracket.
func parseIndex(fieldPath string, start int) (Step, int, error) {
	position := start + 1

	end := strings.IndexByte(fieldPath[start:], ']')
	if end < 0 {
		return Step{}, 0, fmt.Errorf("%w at %d", ErrMissingClosingBracket, position)
	}

	end += start

	chunk := fieldPath[start+1 : end]
	if chunk == "" {
		return Step{}, 0, fmt.Errorf("%w at %d", ErrEmptyIndex, position)
	}

	step, err := leadingInteger(chunk)
	if err != nil {
		return Step{}, 0, fmt.Errorf("%w at %d (%q): %w", ErrInvalidIndex, position, chunk, err)
	}

	return step, end + 1, nil
}

// leadingInteger reads the integer at the start of text the way a lenient
// numeric parser does: surrounding space is skipped, an optional sign and a
// 0x prefix are accepted and anything after the digits is ignored, so "1.5"
// and "1abc" both read 1. It fails only when no digit is found.
func leadingInteger(text string) (Step, error) {
	text = strings.TrimSpace(text)

	sign := ""
	if text != "" && (text[0] == '-' || text[0] == '+') {
		if text[0] == '-' {
			sign = "-"
		}

		text = text[1:]
	}

	base, isDigit := 10, isDecimal
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		base, isDigit = 16, isHex
		text = text[2:]
	}

	end := 0
	for end < len(text) && isDigit(text[end]) {
		end++
	}

	if end == 0 {
		return Step{}, errNotANumber
	}

	digits := text[:end]

	value, err := strconv.ParseInt(sign+digits, base, strconv.IntSize)
	if err == nil {
		return Index(int(value)), nil
	}

	// Out of range: saturate, keep the decimal text for map keys.
	index := math.MaxInt
	if sign == "-" {
		index = math.MinInt
	}

	n, _ := new(big.Int).SetString(sign+digits, base)

	return Step{key: n.String(), index: index, isIndex: true}, nil
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// nextDelimiter returns the position of the first unescaped '.' or '[' at or
// after from, or len(fieldPath) when there is none.
func nextDelimiter(fieldPath string, from int) int {
	for i := from; i < len(fieldPath); i++ {
		c := fieldPath[i]
		if (c == '.' || c == '[') && !IsEscaped(fieldPath, i) {
			return i
		}
	}

	return len(fieldPath)
}
