package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// ParseAttendeeEmails extracts email-looking tokens from the free-text
// attendee field. Tokens are split on whitespace, commas and semicolons;
// anything containing "@" is kept. Best effort only, never an error.
func ParseAttendeeEmails(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	var emails []string
	for _, f := range fields {
		if strings.Contains(f, "@") {
			emails = append(emails, f)
		}
	}
	return emails
}

// BuildMailtoLink builds a mailto: URL for inviting the given addresses.
func BuildMailtoLink(to []string, subject, body string) string {
	params := url.Values{}
	if len(to) > 0 {
		params.Set("to", strings.Join(to, ", "))
	}
	if subject != "" {
		params.Set("subject", subject)
	}
	if body != "" {
		params.Set("body", body)
	}
	q := params.Encode()
	if q == "" {
		return "mailto:"
	}
	return "mailto:?" + q
}
