package feeds

import (
	"strings"
	"time"
)

// defaultLastmod is used when a locale has no posts, keeping output
// stable across calls
const defaultLastmod = "2024-01-01"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(value string) string {
	return xmlEscaper.Replace(value)
}

// rfc1123Date renders a timestamp the way RSS readers expect
func rfc1123Date(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT"
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
