package documents

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackStem = "document"

// Extension returns the lower-cased text after the last dot of name.
// ok is false when name has no dot.
func Extension(name string) (ext string, ok bool) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// SanitizeFilename reduces a client-supplied name to a safe leaf: path
// components are dropped, accents are folded to ASCII, whitespace runs become
// "_", anything outside [A-Za-z0-9._-] is removed and leading or trailing
// dots and underscores are trimmed. The result may be empty.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "/" || name == "." {
		return ""
	}

	folded, _, err := transform.String(asciiFold(), name)
	if err == nil {
		name = folded
	}
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			return r
		}
		return -1
	}, name)
	return strings.Trim(name, "._")
}

// StoredName is the canonical leaf name for an upload whose extension has
// already been validated. The stem is sanitized and the extension kept, so a
// stem that sanitizes to nothing still yields "document.<ext>".
func StoredName(original string) string {
	leaf := path.Base(strings.ReplaceAll(original, "\\", "/"))
	i := strings.LastIndex(leaf, ".")
	if i < 0 {
		return SanitizeFilename(leaf)
	}
	stem := SanitizeFilename(leaf[:i])
	ext := SanitizeFilename(leaf[i+1:])
	if stem == "" {
		stem = fallbackStem
	}
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// asciiFold decomposes characters and drops combining marks, so "é" becomes "e".
func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
