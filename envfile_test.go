package envfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pop-os/envfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample exercises every read-side behavior at once: quoting, empty values,
// leading whitespace, comments (including one containing '='), blank lines,
// and an embedded '=' in a value.
const sample = `DOUBLE_QUOTED_STRING="This is a 'double-quoted' string"
EFI_UUID=DFFD-D047
HOSTNAME=pop-testing
KBD_LAYOUT=us
KBD_MODEL=
KBD_VARIANT=
 LANG=en_US.UTF-8
OEM_MODE=0
# Intentional blank line

# Should ignore = operator in comment
RECOVERY_UUID=PARTUUID=asdfasd7asdf7sad-asdfa
ROOT_UUID=2ef950c2-5ce6-4ae0-9fb9-a8c7468fa82c
SINGLE_QUOTED_STRING='This is a single-quoted string'
`

// sampleCleaned is the canonical rendering of sample: sorted, no comments,
// no blank lines, leading whitespace gone, quoting normalized.
const sampleCleaned = `DOUBLE_QUOTED_STRING="This is a 'double-quoted' string"
EFI_UUID=DFFD-D047
HOSTNAME=pop-testing
KBD_LAYOUT=us
KBD_MODEL=
KBD_VARIANT=
LANG=en_US.UTF-8
OEM_MODE=0
RECOVERY_UUID=PARTUUID=asdfasd7asdf7sad-asdfa
ROOT_UUID=2ef950c2-5ce6-4ae0-9fb9-a8c7468fa82c
SINGLE_QUOTED_STRING='This is a single-quoted string'
`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recovery.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func pairs(env *envfile.EnvFile) map[string]string {
	m := map[string]string{}
	for _, key := range env.Keys() {
		value, _ := env.Get(key)
		m[key] = value
	}
	return m
}

func TestNewParsesSample(t *testing.T) {
	env, err := envfile.New(write(t, sample))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"DOUBLE_QUOTED_STRING": "This is a 'double-quoted' string",
		"EFI_UUID":             "DFFD-D047",
		"HOSTNAME":             "pop-testing",
		"KBD_LAYOUT":           "us",
		"KBD_MODEL":            "",
		"KBD_VARIANT":          "",
		"LANG":                 "en_US.UTF-8",
		"OEM_MODE":             "0",
		"RECOVERY_UUID":        "PARTUUID=asdfasd7asdf7sad-asdfa",
		"ROOT_UUID":            "2ef950c2-5ce6-4ae0-9fb9-a8c7468fa82c",
		"SINGLE_QUOTED_STRING": "This is a single-quoted string",
	}, pairs(env))
}

func TestWriteCanonicalizes(t *testing.T) {
	path := write(t, sample)
	env, err := envfile.New(path)
	require.NoError(t, err)
	require.NoError(t, env.Write())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCleaned, string(data))
}

func TestNewMissingFile(t *testing.T) {
	_, err := envfile.New(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "unable to open file at")
}

func TestWriteError(t *testing.T) {
	env := envfile.FromBytes(filepath.Join(t.TempDir(), "no", "such", "dir", "env"), nil)
	env.Update("A", "1")
	err := env.Write()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create file at")
}

func TestLaterKeyWins(t *testing.T) {
	env := envfile.FromBytes("", []byte("A=first\nB=only\nA=second\n"))
	value, ok := env.Get("A")
	require.True(t, ok)
	assert.Equal(t, "second", value)
	assert.Equal(t, 2, env.Len())
}

func TestEmptyValuePreserved(t *testing.T) {
	env := envfile.FromBytes("", []byte("KBD_MODEL=\n"))
	value, ok := env.Get("KBD_MODEL")
	require.True(t, ok, "empty value must keep the key present")
	assert.Equal(t, "", value)
}

func TestGetAbsent(t *testing.T) {
	env := envfile.FromBytes("", nil)
	_, ok := env.Get("MISSING")
	assert.False(t, ok)
}

func TestUpdateAndUnset(t *testing.T) {
	env := envfile.FromBytes("", []byte("A=1\n"))
	env.Update("B", "2")
	env.Update("A", "overwritten")

	assert.Equal(t, map[string]string{"A": "overwritten", "B": "2"}, pairs(env))

	env.Unset("A")
	_, ok := env.Get("A")
	assert.False(t, ok)
	env.Unset("A") // absent: no-op
	assert.Equal(t, 1, env.Len())
}

func TestKeysSorted(t *testing.T) {
	env := envfile.FromBytes("", []byte("ZED=1\nALPHA=2\nMID=3\n"))
	assert.Equal(t, []string{"ALPHA", "MID", "ZED"}, env.Keys())
}

func TestSkipsUnparseableLines(t *testing.T) {
	content := []byte("# comment\n\n   \nno equals here\nBAD='unclosed\nGOOD=1\n")
	// A line that is not valid UTF-8 is skipped too.
	content = append(content, 0xff, 0xfe, '=', 'x', '\n')

	env := envfile.FromBytes("", content)
	assert.Equal(t, map[string]string{"GOOD": "1"}, pairs(env))
}

func TestCRLFLineEndings(t *testing.T) {
	env := envfile.FromBytes("", []byte("A=1\r\nB=two\r\n"))
	assert.Equal(t, map[string]string{"A": "1", "B": "two"}, pairs(env))
}

func TestLeadingWhitespaceBeforeKey(t *testing.T) {
	env := envfile.FromBytes("", []byte(" LANG=en_US.UTF-8\n"))
	value, ok := env.Get("LANG")
	require.True(t, ok)
	assert.Equal(t, "en_US.UTF-8", value)
}

// TestUnquotedBackslashesAreLiteral: backslashes in unquoted values carry no
// escape meaning — Windows paths and the like load byte-for-byte, and no
// line is dropped over an unrecognized sequence.
func TestUnquotedBackslashesAreLiteral(t *testing.T) {
	env := envfile.FromBytes("", []byte("WINPATH=C:\\temp\nDOCROOT=dir\\qfile\n"))
	assert.Equal(t, map[string]string{
		"WINPATH": `C:\temp`,
		"DOCROOT": `dir\qfile`,
	}, pairs(env))

	// And they survive a rewrite: Escape quotes the backslash, Unescape
	// recovers it.
	env.Path = filepath.Join(t.TempDir(), "paths.env")
	require.NoError(t, env.Write())
	reloaded, err := envfile.New(env.Path)
	require.NoError(t, err)
	assert.Equal(t, pairs(env), pairs(reloaded))
}

func TestValueKeepsEmbeddedEquals(t *testing.T) {
	env := envfile.FromBytes("", []byte("RECOVERY_UUID=PARTUUID=asdfasd7asdf7sad-asdfa\n"))
	value, ok := env.Get("RECOVERY_UUID")
	require.True(t, ok)
	assert.Equal(t, "PARTUUID=asdfasd7asdf7sad-asdfa", value)
}

// TestWriteReloadRoundTrip checks parse(write(store)) == store, including
// for values that only reach the store via Update and need quoting on the
// way out.
func TestWriteReloadRoundTrip(t *testing.T) {
	path := write(t, sample)
	env, err := envfile.New(path)
	require.NoError(t, err)

	env.Update("SPACED", "value with spaces")
	env.Update("QUOTES", `it has "both" kinds of 'quotes'`)
	env.Update("NEWLINE", "line one\nline two")
	env.Update("EMPTY", "")

	require.NoError(t, env.Write())

	reloaded, err := envfile.New(path)
	require.NoError(t, err)
	assert.Equal(t, pairs(env), pairs(reloaded))

	// A second write must be byte-identical: canonicalization is stable.
	first := env.Bytes()
	require.NoError(t, reloaded.Write())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(data))
}

func TestEndToEnd(t *testing.T) {
	path := write(t, "EFI_UUID=DFFD-D047\n# comment\n\nHOSTNAME=pop-testing\nKBD_MODEL=\n")
	env, err := envfile.New(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"EFI_UUID":  "DFFD-D047",
		"HOSTNAME":  "pop-testing",
		"KBD_MODEL": "",
	}, pairs(env))

	env.Update("ID", "example")
	value, ok := env.Get("ID")
	require.True(t, ok)
	assert.Equal(t, "example", value)

	require.NoError(t, env.Write())

	reloaded, err := envfile.New(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"EFI_UUID", "HOSTNAME", "ID", "KBD_MODEL"}, reloaded.Keys())
	assert.Equal(t, 4, reloaded.Len())
}

func TestFromBytesMatchesNew(t *testing.T) {
	path := write(t, sample)
	fromFile, err := envfile.New(path)
	require.NoError(t, err)
	fromBytes := envfile.FromBytes(path, []byte(sample))
	assert.Equal(t, pairs(fromFile), pairs(fromBytes))
	assert.Equal(t, path, fromBytes.Path)
}
