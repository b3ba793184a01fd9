package envfile

import (
	"fmt"
	"strings"
	"unicode"
)

// Escape and Unescape are exact inverses: Unescape(Escape(v)) == v for any
// value v. They implement the shell-like quoting used by environment files —
// unquoted and single-quoted text is fully literal (backslashes included),
// and only double quotes allow backslash escapes.

// Unescape decodes a possibly-quoted value. Quoting may switch mid-string
// ("a"'b'c decodes to abc). Backslash escapes are interpreted only inside
// double quotes; an unclosed quote or a malformed escape sequence is an
// error.
func Unescape(value string) (string, error) {
	const (
		bare = iota
		singleQuoted
		doubleQuoted
	)

	var b strings.Builder
	state := bare
	runes := []rune(value)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case singleQuoted:
			if r == '\'' {
				state = bare
			} else {
				b.WriteRune(r)
			}
		case doubleQuoted:
			switch r {
			case '"':
				state = bare
			case '\\':
				decoded, next, err := decodeEscape(runes, i)
				if err != nil {
					return "", err
				}
				b.WriteRune(decoded)
				i = next
			default:
				b.WriteRune(r)
			}
		default: // bare
			switch r {
			case '\'':
				state = singleQuoted
			case '"':
				state = doubleQuoted
			default:
				b.WriteRune(r)
			}
		}
	}

	if state != bare {
		return "", fmt.Errorf("unclosed quote in %q", value)
	}
	return b.String(), nil
}

// decodeEscape decodes the escape sequence starting at the backslash at
// runes[i]. It returns the decoded rune and the index of the last rune
// consumed.
func decodeEscape(runes []rune, i int) (rune, int, error) {
	if i+1 >= len(runes) {
		return 0, 0, fmt.Errorf("trailing backslash")
	}
	r := runes[i+1]
	switch r {
	case 'a':
		return '\a', i + 1, nil
	case 'b':
		return '\b', i + 1, nil
	case 'f':
		return '\f', i + 1, nil
	case 'n':
		return '\n', i + 1, nil
	case 'r':
		return '\r', i + 1, nil
	case 't':
		return '\t', i + 1, nil
	case 'v':
		return '\v', i + 1, nil
	case 'e', 'E':
		return '\x1b', i + 1, nil
	case '\\', '\'', '"', '$', '`', ' ':
		return r, i + 1, nil
	case 'u':
		return decodeUnicodeEscape(runes, i + 1)
	}
	return 0, 0, fmt.Errorf("unknown escape sequence \\%c", r)
}

// decodeUnicodeEscape decodes \u{XXXX} (1–6 hex digits) with the 'u' at
// runes[i].
func decodeUnicodeEscape(runes []rune, i int) (rune, int, error) {
	if i+1 >= len(runes) || runes[i+1] != '{' {
		return 0, 0, fmt.Errorf("expected '{' after \\u")
	}
	var value rune
	digits := 0
	for j := i + 2; j < len(runes); j++ {
		r := runes[j]
		if r == '}' {
			if digits == 0 {
				return 0, 0, fmt.Errorf("empty unicode escape")
			}
			if !validRune(value) {
				return 0, 0, fmt.Errorf("invalid unicode codepoint \\u{%x}", value)
			}
			return value, j, nil
		}
		d := hexDigit(r)
		if d < 0 || digits == 6 {
			return 0, 0, fmt.Errorf("invalid unicode escape")
		}
		value = value<<4 | rune(d)
		digits++
	}
	return 0, 0, fmt.Errorf("unclosed unicode escape")
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

func validRune(r rune) bool {
	return r >= 0 && r <= unicode.MaxRune && (r < 0xD800 || r > 0xDFFF)
}

// Escape quotes a value only when necessary for it to survive a round trip
// through Unescape. Simple values (and the empty string) pass through
// unchanged; values containing whitespace or quoting metacharacters are
// wrapped in single quotes when possible, otherwise in double quotes with
// backslash escapes.
func Escape(value string) string {
	needsQuoting := false
	needsEscapes := false
	for _, r := range value {
		switch {
		case r == '\'':
			needsQuoting = true
			needsEscapes = true
		case !unicode.IsPrint(r) && r != ' ':
			needsQuoting = true
			needsEscapes = true
		case unicode.IsSpace(r):
			needsQuoting = true
		case r == '"' || r == '\\' || r == '$' || r == '`' || r == '#':
			needsQuoting = true
		}
	}

	if !needsQuoting {
		return value
	}
	if !needsEscapes {
		return "'" + value + "'"
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '`':
			b.WriteString("\\`")
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\x1b':
			b.WriteString(`\e`)
		default:
			if unicode.IsPrint(r) || r == ' ' {
				b.WriteRune(r)
			} else {
				fmt.Fprintf(&b, `\u{%x}`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
