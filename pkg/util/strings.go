package util

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses all runs of whitespace (including non-breaking
// spaces common in scraped HTML) into single spaces and trims the ends
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func ContainsAnySubstring(s string, substrings []string) bool {
	for _, substring := range substrings {
		if substring != "" && strings.Contains(s, substring) {
			return true
		}
	}

	return false
}

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}
