package update

import (
	"regexp"
)

var (
	versionSeparators = regexp.MustCompile(`\.|\s`)
	allDigits         = regexp.MustCompile(`^\d+$`)
)

// CompareVersion reports whether current is older than latest.
//
// Dots and whitespace are stripped from both versions and each must then be all
// digits, otherwise the result is false. The remaining digit strings are compared
// as strings, so "1.0.3" < "1.1.0" but equal versions are never older.
func CompareVersion(current, latest string) bool {
	current = versionSeparators.ReplaceAllString(current, "")
	latest = versionSeparators.ReplaceAllString(latest, "")

	if !allDigits.MatchString(current) || !allDigits.MatchString(latest) {
		return false
	}

	return current < latest
}
