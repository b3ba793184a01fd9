package envfile

import (
	"strings"
	"unicode/utf8"
)

// parseLine classifies one raw line (without its trailing newline) as either
// a key/value pair or a line to ignore. Parsing is best-effort: comments,
// blank lines, lines without '=', invalid UTF-8, and values with malformed
// quoting all produce ok == false rather than an error.
//
// The whole line is trimmed before splitting, so leading whitespace before
// a key is tolerated. strings.TrimSpace also strips a trailing '\r', which
// makes CRLF line endings parse the same as plain LF. The split happens at
// the first '=' only; any further '=' characters belong to the value.
func parseLine(raw []byte) (key, value string, ok bool) {
	if !utf8.Valid(raw) {
		return "", "", false
	}

	line := strings.TrimSpace(string(raw))
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	key, rawValue, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	value, err := Unescape(rawValue)
	if err != nil {
		return "", "", false
	}
	return key, value, true
}
