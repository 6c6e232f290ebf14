package domain

import "strings"

// MaskChar replaces hidden digits in masked card numbers.
const MaskChar = 'X'

// StripNonDigits removes every character that is not 0-9.
// Example: "4111-1111-1111-1111" => "4111111111111111"
func StripNonDigits(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for i := 0; i < len(number); i++ {
		if c := number[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// MaskAllButFirstAndLastFour replaces every digit with MaskChar except
// the leading character and the last four characters. Non-digits are
// kept in place.
// Example: "4111111111111111" => "4XXXXXXXXXXX1111"
func MaskAllButFirstAndLastFour(number string) string {
	masked := []byte(number)
	for i := 1; i < len(masked)-4; i++ {
		if masked[i] >= '0' && masked[i] <= '9' {
			masked[i] = MaskChar
		}
	}
	return string(masked)
}

// FormatDashed drops spaces and dashes from number and regroups it in
// blocks of four counted from the right.
// Example: "4111111111111111" => "4111-1111-1111-1111"
func FormatDashed(number string) string {
	clean := strings.NewReplacer("-", "", " ", "").Replace(number)

	var b strings.Builder
	b.Grow(len(clean) + len(clean)/4)
	for i := 0; i < len(clean); i++ {
		if i > 0 && (len(clean)-i)%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(clean[i])
	}
	return b.String()
}
