package weather

import "strings"

const regionalIndicatorA = 0x1F1E6

// FlagGlyph converts a two-letter country code into its pair of regional
// indicator symbols. Anything other than two ASCII letters yields "".
func FlagGlyph(countryCode string) string {
	if len(countryCode) != 2 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(countryCode); i++ {
		c := countryCode[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c >= 'A' && c <= 'Z':
		default:
			return ""
		}
		b.WriteRune(rune(regionalIndicatorA + int(c-'A')))
	}
	return b.String()
}
