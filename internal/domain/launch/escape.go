package launch

import "strings"

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EscapeAppleScript escapes s for use inside an AppleScript string literal
func EscapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}

// UnescapeAppleScript reverses EscapeAppleScript. A trailing lone
// backslash is kept as is.
func UnescapeAppleScript(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ShellQuote wraps s in POSIX single quotes
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
