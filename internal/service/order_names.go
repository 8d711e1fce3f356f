package service

import "strings"

// DigitRun returns the first maximal run of ASCII digits in s, or "" if none
func DigitRun(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

// NameCandidates builds the ordered, duplicate-free list of order names to
// try for a user supplied token: the token itself, then prefix+digits,
// #digits and bare digits, then the upper-cased form of each of those.
func NameCandidates(token, prefix string) []string {
	token = strings.TrimSpace(token)
	digits := DigitRun(token)

	base := []string{token}
	if digits != "" {
		base = append(base, prefix+digits, "#"+digits, digits)
	}

	seen := make(map[string]bool, len(base)*2)
	out := make([]string, 0, len(base)*2)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, name := range base {
		add(name)
	}
	for _, name := range base {
		add(strings.ToUpper(name))
	}

	return out
}
