package shared

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxEmailLength      = 254
	maxEmailLocalLength = 64
	minPhoneDigits      = 7
	maxPhoneDigits      = 15
)

// SanitizeString drops invalid UTF-8 and control characters, then trims surrounding
// whitespace. SanitizeString(SanitizeString(s)) == SanitizeString(s) for every s.
func SanitizeString(s string) string {
	return strings.TrimSpace(stripControl(s, false))
}

// SanitizeMultiline is SanitizeString for free text: line breaks survive, normalized to \n.
func SanitizeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(stripControl(s, true))
}

func stripControl(s string, keepNewlines bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		if r == utf8.RuneError && width == 1 {
			continue
		}
		if unicode.IsControl(r) && !(keepNewlines && r == '\n') {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

// SanitizeEmail returns the trimmed, lower-cased address, or "" when it is not a
// plausible mailbox. The domain must contain a dot, so "a@b" is rejected.
func SanitizeEmail(s string) string {
	email := strings.ToLower(strings.TrimSpace(s))
	if email == "" || len(email) > maxEmailLength {
		return ""
	}
	if strings.Count(email, "@") != 1 {
		return ""
	}

	at := strings.IndexByte(email, '@')
	local, domain := email[:at], email[at+1:]
	if local == "" || domain == "" || len(local) > maxEmailLocalLength {
		return ""
	}

	for _, r := range email {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`<>()[]\,;:"`, r) {
			return ""
		}
	}

	if !strings.Contains(domain, ".") || strings.Contains(domain, "..") ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ""
	}

	return email
}

// SanitizePhone keeps digits and a single leading '+'. Returns "" unless the number
// has a plausible length.
func SanitizePhone(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	if strings.HasPrefix(s, "+") {
		b.WriteByte('+')
	}

	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			digits++
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return ""
	}
	return b.String()
}

// EscapeHTML escapes &, <, >, " and ' for interpolation into an HTML email body.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
