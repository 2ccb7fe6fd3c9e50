package domain

import "strings"

var (
	displayEscaper = strings.NewReplacer("\\", `\\`, "\n", `\n`, "\t", `\t`)
	inputUnescaper = strings.NewReplacer(`\\`, "\\", `\n`, "\n", `\t`, "\t")
)

// DisplayValue converts a stored string into its single-line table form,
// showing newlines and tabs as literal \n and \t sequences.
func DisplayValue(s string) string {
	return displayEscaper.Replace(s)
}

// ParseEscapes converts \n and \t sequences typed by the user back into
// literal newline and tab characters. It is the inverse of DisplayValue.
func ParseEscapes(s string) string {
	return inputUnescaper.Replace(s)
}

// Preview returns a truncated single-line preview of a replacement for
// table display.
func Preview(s string, max int) string {
	display := DisplayValue(s)
	if max <= 0 {
		return display
	}
	runes := []rune(display)
	if len(runes) <= max {
		return display
	}
	return string(runes[:max-1]) + "…"
}
