// Package duration turns free-form countdown input such as "1 hour 30 minutes",
// "2d 4h", "90" or "add 5m" into a time.Duration.
//
// Each unit class (days, hours, minutes, seconds) is matched independently with
// its full word checked before its abbreviations, so "1h 30m" and "30m 1h" mean
// the same thing. A bare number is read as minutes. Inputs containing "add" or
// "sub"/"subtract" adjust the current remaining time instead of replacing it.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnrecognizedFormat is returned when the input does not describe a
	// positive duration.
	ErrUnrecognizedFormat = errors.New("unrecognized duration format")
)

// ParseError records the input that failed to parse.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse duration %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind says how a Command's amount relates to the running countdown.
type Kind int

const (
	Absolute Kind = iota
	Add
	Subtract
)

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	default:
		return "absolute"
	}
}

// Command is a parsed input before it is resolved against the remaining time.
type Command struct {
	Kind   Kind
	Amount time.Duration
}

// Apply resolves the command against the current remaining time. The result
// is never negative.
func (c Command) Apply(current time.Duration) time.Duration {
	switch c.Kind {
	case Add:
		if current > math.MaxInt64-c.Amount {
			return math.MaxInt64
		}
		return current + c.Amount
	case Subtract:
		if c.Amount >= current {
			return 0
		}
		return current - c.Amount
	default:
		return c.Amount
	}
}

// unit is one class of time component. Tokens are tried in order and the
// first one that matches wins for the class.
type unit struct {
	seconds  float64
	patterns []*regexp.Regexp
}

func componentPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(\d+(?:\.\d+)?)\s*` + token + `s?`)
}

var units = []unit{
	{seconds: 86400, patterns: []*regexp.Regexp{componentPattern("day"), componentPattern("d")}},
	{seconds: 3600, patterns: []*regexp.Regexp{componentPattern("hour"), componentPattern("h")}},
	{seconds: 60, patterns: []*regexp.Regexp{componentPattern("minute"), componentPattern("min"), componentPattern("m")}},
	{seconds: 1, patterns: []*regexp.Regexp{componentPattern("second"), componentPattern("sec"), componentPattern("s")}},
}

// maxSeconds is the largest value representable as a time.Duration.
var maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// Parse interprets raw and returns the new absolute countdown value. Relative
// inputs are resolved against currentRemaining.
func Parse(raw string, currentRemaining time.Duration) (time.Duration, error) {
	cmd, err := ParseCommand(raw)
	if err != nil {
		return 0, err
	}
	return cmd.Apply(currentRemaining), nil
}

// ParseCommand interprets raw without resolving relative adjustments.
func ParseCommand(raw string) (Command, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Command{}, &ParseError{Input: raw, Err: ErrEmptyInput}
	}
	lower := strings.ToLower(input)

	kind := Absolute
	body := lower
	switch {
	case strings.Contains(lower, "add"):
		kind = Add
		body = afterLast(lower, "add ")
	case strings.Contains(lower, "subtract"):
		kind = Subtract
		body = afterLast(lower, "subtract ")
	case strings.Contains(lower, "sub"):
		kind = Subtract
		body = afterLast(lower, "sub ")
	}

	amount, ok := parseComponents(body)
	if !ok {
		return Command{}, &ParseError{Input: raw, Err: ErrUnrecognizedFormat}
	}
	return Command{Kind: kind, Amount: amount}, nil
}

// afterLast returns what follows the last occurrence of sep, or s itself when
// sep does not occur.
func afterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

func parseComponents(s string) (time.Duration, bool) {
	var total float64
	for _, u := range units {
		for _, re := range u.patterns {
			m := re.FindStringSubmatch(s)
			if m == nil {
				continue
			}
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			total += n * u.seconds
			break
		}
	}

	if total == 0 {
		if n, ok := bareNumber(strings.TrimSpace(s)); ok {
			total = n * 60
		}
	}

	if !(total > 0) || total >= maxSeconds {
		return 0, false
	}
	d := time.Duration(total * float64(time.Second))
	if d <= 0 {
		return 0, false
	}
	return d, true
}

var bareNumberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// bareNumber accepts plain decimal numbers only, not the wider syntax of
// strconv ("1_0", "1e2", "inf").
func bareNumber(s string) (float64, bool) {
	if !bareNumberPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
