package core

import (
	"path/filepath"
	"strings"
)

// packageSentinel is the generic base filename used by multi-file
// collection bundles. Files carrying it all look alike, so the parent
// directory is the distinguishing label instead.
const packageSentinel = "package"

// Collection is the display grouping for one document.
type Collection struct {
	Path     string // absolute path of the document
	Relative string // path relative to the store root
	Label    string // derived via LabelFor
}

// LabelFor derives the human-readable label for a document path. It must
// be used everywhere a label is shown or sorted by.
//
//	LabelFor("/x/y/package.yml") == "y"
//	LabelFor("/x/snacks.yml")    == "snacks"
func LabelFor(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(stem, packageSentinel) {
		return filepath.Base(filepath.Dir(path))
	}
	return stem
}

// SafeFileName reduces name to a filesystem-safe base name: ASCII
// letters, digits, dot, dash and underscore survive, spaces become
// underscores, everything else is dropped. Leading dots are trimmed so a
// collection can never become a hidden file. Returns "" when nothing
// safe remains.
func SafeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
