// Package cardrules classifies and validates payment card numbers
// against a table of network rules (leading-digit patterns, accepted
// lengths, Luhn policy, security code size and formatting gaps).
//
// Rules and rulesets are immutable once built. A Validator holds the
// subset of networks a caller accepts and is meant to be created per
// validation context.
package cardrules

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator is inserted at every gap by NetworkRule.Format.
const Separator = ' '

type patternKind uint8

const (
	patternPrefix patternKind = iota
	patternRange
)

// Pattern is a leading-digit matcher: either a literal prefix or an
// inclusive numeric range.
type Pattern struct {
	kind   patternKind
	prefix string
	lo, hi string
	loN    uint64
	hiN    uint64
}

// Prefix builds a pattern matching numbers starting with digits.
func Prefix(digits string) Pattern {
	return Pattern{kind: patternPrefix, prefix: digits}
}

// Range builds a pattern matching numbers whose leading digits,
// truncated to the wider bound's width, fall within [lo, hi]. Both
// bounds must be digit strings with lo <= hi.
func Range(lo, hi string) (Pattern, error) {
	if !isDigits(lo) || !isDigits(hi) {
		return Pattern{}, fmt.Errorf("%w: bounds must be digit strings", ErrInvalidRange)
	}
	loN, errLo := strconv.ParseUint(lo, 10, 64)
	hiN, errHi := strconv.ParseUint(hi, 10, 64)
	if errLo != nil || errHi != nil {
		return Pattern{}, fmt.Errorf("%w: bounds out of range", ErrInvalidRange)
	}
	if loN > hiN {
		return Pattern{}, fmt.Errorf("%w: min greater than max", ErrInvalidRange)
	}
	return Pattern{kind: patternRange, lo: lo, hi: hi, loN: loN, hiN: hiN}, nil
}

// IsRange reports whether p is a range pattern.
func (p Pattern) IsRange() bool { return p.kind == patternRange }

// Bounds returns the range bounds, or the prefix twice for a prefix pattern.
func (p Pattern) Bounds() (lo, hi string) {
	if p.kind == patternRange {
		return p.lo, p.hi
	}
	return p.prefix, p.prefix
}

func (p Pattern) String() string {
	if p.kind == patternRange {
		return p.lo + "-" + p.hi
	}
	return p.prefix
}

func (p Pattern) matches(number string) bool {
	switch p.kind {
	case patternPrefix:
		return strings.HasPrefix(number, p.prefix)
	case patternRange:
		width := max(len(p.lo), len(p.hi))
		lead := number[:min(width, len(number))]
		if lead == "" || !isDigits(lead) {
			return false
		}
		n, err := strconv.ParseUint(lead, 10, 64)
		if err != nil {
			return false
		}
		return p.loN <= n && n <= p.hiN
	}
	return false
}

func (p Pattern) strength() int {
	if p.kind == patternRange {
		return min(len(p.lo), len(p.hi))
	}
	return len(p.prefix)
}

// Length is an accepted card number length: exact or an inclusive range.
type Length struct {
	Min, Max int
}

func ExactLength(n int) Length { return Length{Min: n, Max: n} }

// LengthRange accepts lengths shortest through longest inclusive.
func LengthRange(shortest, longest int) (Length, error) {
	if shortest < 0 {
		return Length{}, fmt.Errorf("%w: negative length", ErrInvalidRange)
	}
	if shortest > longest {
		return Length{}, fmt.Errorf("%w: min greater than max", ErrInvalidRange)
	}
	return Length{Min: shortest, Max: longest}, nil
}

// IsRange reports whether l accepts more than one length.
func (l Length) IsRange() bool { return l.Min != l.Max }

func (l Length) String() string {
	if l.IsRange() {
		return strconv.Itoa(l.Min) + "-" + strconv.Itoa(l.Max)
	}
	return strconv.Itoa(l.Min)
}

func (l Length) contains(n int) bool {
	return l.Min <= n && n <= l.Max
}

// SecurityCode names the CVV-equivalent field of a network.
type SecurityCode struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// NetworkRule is one card network's matching configuration.
type NetworkRule struct {
	displayName  string
	id           string
	patterns     []Pattern
	lengths      []Length
	code         SecurityCode
	requiresLuhn bool
	gaps         []int
}

func (r *NetworkRule) DisplayName() string        { return r.displayName }
func (r *NetworkRule) ID() string                 { return r.id }
func (r *NetworkRule) SecurityCode() SecurityCode { return r.code }
func (r *NetworkRule) RequiresLuhn() bool         { return r.requiresLuhn }

// Patterns returns a copy of the rule's leading-digit patterns.
func (r *NetworkRule) Patterns() []Pattern {
	return append([]Pattern(nil), r.patterns...)
}

// Lengths returns a copy of the accepted lengths.
func (r *NetworkRule) Lengths() []Length {
	return append([]Length(nil), r.lengths...)
}

// Gaps returns a copy of the separator offsets.
func (r *NetworkRule) Gaps() []int {
	return append([]int(nil), r.gaps...)
}

// Matches reports whether number has an accepted length, satisfies the
// Luhn checksum when the network requires it, and matches a pattern.
func (r *NetworkRule) Matches(number string) bool {
	if !r.MatchesLength(number) {
		return false
	}
	if r.requiresLuhn && !r.SatisfiesLuhn(number) {
		return false
	}
	return r.MatchesPattern(number)
}

func (r *NetworkRule) MatchesLength(number string) bool {
	n := len(number)
	for _, l := range r.lengths {
		if l.contains(n) {
			return true
		}
	}
	return false
}

func (r *NetworkRule) SatisfiesLuhn(number string) bool {
	return Luhn(number)
}

func (r *NetworkRule) MatchesPattern(number string) bool {
	for _, p := range r.patterns {
		if p.matches(number) {
			return true
		}
	}
	return false
}

// MatchStrength is the specificity of the most specific matching
// pattern, or 0 when no pattern matches. Length and Luhn are ignored.
func (r *NetworkRule) MatchStrength(number string) int {
	strength := 0
	for _, p := range r.patterns {
		if p.matches(number) {
			strength = max(strength, p.strength())
		}
	}
	return strength
}

// MatchesSecurityCode reports whether code is all digits of the
// network's security code size.
func (r *NetworkRule) MatchesSecurityCode(code string) bool {
	return isDigits(code) && len(code) == r.code.Size
}

// Format inserts Separator before every character index listed in the
// rule's gaps. Gaps past the end of number are ignored.
func (r *NetworkRule) Format(number string) string {
	var b strings.Builder
	b.Grow(len(number) + len(r.gaps))

	next := 0
	for i := 0; i < len(number); i++ {
		if next < len(r.gaps) && r.gaps[next] == i {
			b.WriteByte(Separator)
			next++
		}
		b.WriteByte(number[i])
	}
	return b.String()
}

// Luhn strips non-digits from number and applies the mod 10 check.
func Luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			continue
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
