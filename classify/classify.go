// Package classify implements the string-format classifier (component C1):
// a single pure function mapping one observed string to a
// [schema.StringKind]. Rules are tried in a fixed precedence order and the
// first match wins; string parsing is done by hand rather than regexp, so
// precedence stays explicit instead of depending on pattern overlap.
package classify

import (
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.jacobcolvin.com/schemaforge/schema"
)

// Classify returns the format classification of a single observed string s.
func Classify(s string) schema.StringKind {
	if isUUID(s) {
		return schema.Tagged(schema.TagUUID)
	}

	if isEmail(s) {
		return schema.Tagged(schema.TagEmail)
	}

	if isURL(s) {
		return schema.Tagged(schema.TagURL)
	}

	if isNumericString(s) {
		return schema.NumericString(len(s), len(s))
	}

	if isISODateTime(s) {
		return schema.Tagged(schema.TagIsoDateTime)
	}

	if isISODate(s) {
		return schema.Tagged(schema.TagIsoDate)
	}

	if isHostname(s) {
		return schema.Tagged(schema.TagHostname)
	}

	chars := make(map[rune]int, len(s))
	for _, r := range s {
		chars[r]++
	}

	return schema.UnknownString(len(s), len(s), chars)
}

// isUUID reports whether s is an RFC-4122 lowercase-hex UUID in canonical
// 8-4-4-4-12 form.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}

	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isLowerHex(byte(c)) {
				return false
			}
		}
	}

	return true
}

func isLowerHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// isEmail reports whether s is a plausible local@domain address with no
// whitespace and a dotted domain.
func isEmail(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}

	domain := s[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	return addr.Address == s
}

// isURL reports whether s parses as an absolute URL with a scheme and host.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// isNumericString reports whether s is all decimal digits with at most one
// leading '-'.
func isNumericString(s string) bool {
	if s == "" {
		return false
	}

	i := 0
	if s[0] == '-' {
		i = 1
	}

	if i == len(s) {
		return false
	}

	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isISODateTime reports whether s matches YYYY-MM-DDTHH:MM:SS with optional
// fractional seconds and an optional Z or ±HH:MM offset, and parses as a
// valid instant.
func isISODateTime(s string) bool {
	for _, layout := range []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}

	return false
}

// isISODate reports whether s matches YYYY-MM-DD and parses as a valid
// date.
func isISODate(s string) bool {
	if len(s) != 10 {
		return false
	}

	_, err := time.Parse("2006-01-02", s)

	return err == nil
}

// isHostname reports whether s is a syntactically valid DNS hostname: two
// or more dot-separated labels of [A-Za-z0-9-], none starting or ending
// with '-'.
func isHostname(s string) bool {
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}

	return true
}

func isValidLabel(label string) bool {
	if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for _, c := range label {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}

	return true
}
