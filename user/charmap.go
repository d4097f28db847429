package user

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// BestEffortText returns s unchanged if it is already valid UTF-8;
// otherwise it re-decodes the raw bytes as Windows-1252, the common
// encoding older, non-UTF8 game clients wrote into name fields. Mirrors
// `icza-screp`'s invalid-rune-triggered fallback to a charmap decoder
// for Brood War replay strings, generalized from Korean/EUC-KR to
// Windows-1252 for this format's userbase.
func BestEffortText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, _, err := transform.String(charmap.Windows1252.NewDecoder(), s)
	if err != nil {
		return s
	}
	return decoded
}
