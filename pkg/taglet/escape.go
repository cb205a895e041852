package taglet

import (
	"strconv"
	"strings"
)

// EscapeHTML escapes s for use as HTML text.
// Besides & < > and ", every rune above 0x7F is written as a numeric character reference,
// so the output is plain ASCII. Apostrophes are kept, HTML4 has no entity for them.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r > 0x7F:
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
