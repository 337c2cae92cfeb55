package message

import "strings"

// Entity tables for the wire-reserved characters. The ampersand pair is
// listed first: replacements are single-pass, so entities produced for the
// other characters are never escaped again.
var (
	paramEscaper = strings.NewReplacer(
		"&", "&amp;",
		"[", "&#91;",
		"]", "&#93;",
		",", "&#44;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"[", "&#91;",
		"]", "&#93;",
	)
	unescaper = strings.NewReplacer(
		"&#44;", ",",
		"&#91;", "[",
		"&#93;", "]",
		"&amp;", "&",
	)
)

// Escape converts raw text to wire-safe form for use inside a token
// parameter value, where commas separate parameters and must be encoded.
func Escape(s string) string {
	return paramEscaper.Replace(s)
}

// EscapeText converts raw text to wire-safe form for standalone literal
// text. Commas carry no structural meaning outside tokens and stay as-is.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Unescape converts wire-safe text back to raw text. It is the exact
// inverse of Escape: the ampersand entity resolves last, so an ampersand it
// produces is never reinterpreted as the start of another entity.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
