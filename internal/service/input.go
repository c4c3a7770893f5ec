package service

import "strings"

// Required text is checked for blankness, but accepted values are stored as given.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optionalText maps blank free text to NULL and keeps anything else verbatim.
func optionalText(s string) *string {
	if isBlank(s) {
		return nil
	}
	return &s
}
