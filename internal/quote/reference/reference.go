// Package reference derives the semantic identifiers used on quotations and
// contracts: QUO<yyyymmdd><initials><seq> and its CTR counterpart.
package reference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const QuotePrefix = "QUO"

const maxSequence = 999

// ErrSequenceOverflow is returned when a (user, day) bucket exhausts its 999
// slots.
var ErrSequenceOverflow = errors.New("quote sequence overflow")

// Initials derives the 2-3 letter user code:
// two or more name tokens -> first letters of the first two; one token ->
// its first three letters; empty -> "SYS".
func Initials(name string) string {
	parts := strings.Fields(strings.ToUpper(strings.TrimSpace(name)))
	switch {
	case len(parts) >= 2:
		return firstN(parts[0], 1) + firstN(parts[1], 1)
	case len(parts) == 1:
		return firstN(parts[0], 3)
	default:
		return "SYS"
	}
}

// Prefix builds the allocation bucket key for a user and day.
func Prefix(name string, day time.Time) string {
	return QuotePrefix + day.Format("20060102") + Initials(name)
}

// Next computes the id following lastID within prefix. lastID is "" when the
// bucket is empty.
func Next(prefix, lastID string) (string, error) {
	seq := 1
	if lastID != "" {
		if len(lastID) < 3 {
			return "", fmt.Errorf("malformed quote id %q", lastID)
		}
		last, err := strconv.Atoi(lastID[len(lastID)-3:])
		if err != nil {
			return "", fmt.Errorf("malformed quote id %q: %w", lastID, err)
		}
		seq = last + 1
	}
	if seq > maxSequence {
		return "", ErrSequenceOverflow
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

// ContractRef maps a quote id to its contract id (QUO... -> CTR...).
func ContractRef(quoteID string) string {
	return strings.Replace(quoteID, QuotePrefix, "CTR", 1)
}

func firstN(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
