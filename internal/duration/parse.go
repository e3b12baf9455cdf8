package duration

import (
	"fmt"
	"strconv"
	"strings"

	"stagedtimer/internal/apperr"
)

const maxFields = 3

// fieldUnits lists the positional fields from the right.
var fieldUnits = [maxFields]struct {
	name   string
	factor Seconds
}{
	{"seconds", 1},
	{"minutes", 60},
	{"hours", 3600},
}

// ParseError describes a rejected duration token.
type ParseError struct {
	Token  string
	Field  string
	Reason string
	Kind   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid duration %q: %s field %s", e.Token, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid duration %q: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Parse converts a S, M:S or H:M:S token into whole seconds.
func Parse(token string) (Seconds, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return 0, &ParseError{Token: token, Reason: "empty token", Kind: apperr.ErrInvalidFormat}
	}
	fields := strings.Split(trimmed, ":")
	if len(fields) > maxFields {
		return 0, &ParseError{
			Token:  token,
			Reason: fmt.Sprintf("%d fields, at most %d allowed", len(fields), maxFields),
			Kind:   apperr.ErrInvalidFormat,
		}
	}

	var total Seconds
	for pos := 0; pos < len(fields); pos++ {
		unit := fieldUnits[pos]
		raw := fields[len(fields)-1-pos]
		leading := pos == len(fields)-1

		value, err := parseField(token, unit.name, raw)
		if err != nil {
			return 0, err
		}
		if !leading && value > 59 {
			return 0, &ParseError{
				Token:  token,
				Field:  unit.name,
				Reason: fmt.Sprintf("%d exceeds 59", value),
				Kind:   apperr.ErrOutOfRange,
			}
		}
		if value > MaxSeconds/unit.factor {
			return 0, overflowError(token, unit.name)
		}
		part := value * unit.factor
		if total > MaxSeconds-part {
			return 0, overflowError(token, "")
		}
		total += part
	}
	return total, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(token string) Seconds {
	s, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return s
}

func parseField(token, name, raw string) (Seconds, error) {
	if raw == "" {
		return 0, &ParseError{Token: token, Field: name, Reason: "is empty", Kind: apperr.ErrInvalidFormat}
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			continue
		}
		reason := fmt.Sprintf("%q is not a non-negative integer", raw)
		if r == '-' {
			reason = fmt.Sprintf("%q is negative", raw)
		}
		return 0, &ParseError{Token: token, Field: name, Reason: reason, Kind: apperr.ErrInvalidFormat}
	}
	digits := strings.TrimLeft(raw, "0")
	if digits == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, overflowError(token, name)
	}
	return Seconds(value), nil
}

func overflowError(token, field string) error {
	return &ParseError{
		Token:  token,
		Field:  field,
		Reason: fmt.Sprintf("exceeds the maximum of %d seconds", MaxSeconds),
		Kind:   apperr.ErrOutOfRange,
	}
}
