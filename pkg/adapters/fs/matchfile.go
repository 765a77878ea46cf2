package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/matchvault/matchvault/pkg/core"
)

const matchesKey = "matches"

// Record keys the store understands. Everything else on a record is
// opaque passthrough: preserved verbatim and re-emitted on update.
const (
	keyTrigger       = "trigger"
	keyReplace       = "replace"
	keyMarkdown      = "markdown"
	keyWord          = "word"
	keyPropagateCase = "propagate_case"
)

// matchFile is one parsed document. The full yaml node tree is retained
// so unknown top-level keys and mapping key order survive a rewrite; the
// matches sequence is just a handle into that tree.
type matchFile struct {
	path    string
	root    *yaml.Node // top-level mapping; nil for an empty file
	matches *yaml.Node // sequence under "matches"; nil when absent or not a sequence
}

// newMatchFile returns an empty in-memory document for path.
func newMatchFile(path string) *matchFile {
	return &matchFile{path: path}
}

// loadMatchFile parses the document at path. A zero-byte or
// whitespace-only file is a valid document with no records, not a parse
// error. Missing files surface the os error unchanged so callers can
// distinguish them with os.IsNotExist.
func loadMatchFile(path string) (*matchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &matchFile{path: path}
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		// Comment-only document.
		return f, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		// Scalar or sequence documents carry no records.
		return f, nil
	}
	f.root = root

	if v := mappingValue(root, matchesKey); v != nil && v.Kind == yaml.SequenceNode {
		f.matches = v
	}
	return f, nil
}

// hasMatches reports whether the document carries a record sequence.
func (f *matchFile) hasMatches() bool { return f.matches != nil }

func (f *matchFile) len() int {
	if f.matches == nil {
		return 0
	}
	return len(f.matches.Content)
}

// recordAt returns the mapping node of the record at ordinal i.
// The caller must have checked the bound.
func (f *matchFile) recordAt(i int) *yaml.Node {
	return f.matches.Content[i]
}

// ensureMatches guarantees the document has a record sequence, creating
// the top-level mapping and the matches key as needed. A matches key
// holding a non-sequence value (e.g. null) is replaced with a fresh
// sequence.
func (f *matchFile) ensureMatches() *yaml.Node {
	if f.root == nil {
		f.root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	for i := 0; i+1 < len(f.root.Content); i += 2 {
		if f.root.Content[i].Value != matchesKey {
			continue
		}
		if f.root.Content[i+1].Kind != yaml.SequenceNode {
			f.root.Content[i+1] = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		}
		f.matches = f.root.Content[i+1]
		return f.matches
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	f.root.Content = append(f.root.Content,
		scalarNode(matchesKey),
		seq,
	)
	f.matches = seq
	return seq
}

// appendRecord adds a record at the end of the sequence.
func (f *matchFile) appendRecord(rec *yaml.Node) {
	f.ensureMatches()
	f.matches.Content = append(f.matches.Content, rec)
}

// replaceAt swaps the record at ordinal i.
func (f *matchFile) replaceAt(i int, rec *yaml.Node) {
	f.matches.Content[i] = rec
}

// removeAt deletes the record at ordinal i, shifting every later record
// down by one. Identities past i in this document are stale afterwards.
func (f *matchFile) removeAt(i int) {
	f.matches.Content = append(f.matches.Content[:i], f.matches.Content[i+1:]...)
}

// save serializes the full node tree back to disk, creating parent
// directories as needed. Key order and unknown fields come out exactly
// as they went in.
func (f *matchFile) save() error {
	if f.root == nil {
		return f.write(nil)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f.root); err != nil {
		enc.Close()
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	return f.write(buf.Bytes())
}

// saveCollapsingEmpty persists the document, writing the zero-byte form
// when the record sequence is empty. A document drained of its records
// must come out as an empty file so downstream consumers of the match
// format do not choke on an empty list structure.
func (f *matchFile) saveCollapsingEmpty() error {
	if f.len() == 0 {
		return f.write(nil)
	}
	return f.save()
}

// write lands data at the document path via temp file + rename, so a
// crash mid-write can never leave a half-serialized document behind.
func (f *matchFile) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// decodeSnippet normalizes one record node into the canonical shape.
// The rich body key wins when both body keys are somehow present, and a
// non-string body is coerced to its string representation rather than
// rejected.
func decodeSnippet(rec *yaml.Node) core.Snippet {
	var sn core.Snippet
	if rec == nil || rec.Kind != yaml.MappingNode {
		return sn
	}

	var replace *yaml.Node
	for i := 0; i+1 < len(rec.Content); i += 2 {
		key, value := rec.Content[i].Value, rec.Content[i+1]
		switch key {
		case keyTrigger:
			sn.Trigger = stringify(value)
		case keyMarkdown:
			sn.Body = stringify(value)
			sn.Format = core.FormatRich
		case keyReplace:
			replace = value
		case keyWord:
			sn.WholeWord = boolValue(value)
		case keyPropagateCase:
			sn.PropagateCase = boolValue(value)
		}
	}
	if sn.Format == core.FormatPlain && replace != nil {
		sn.Body = stringify(replace)
	}
	return sn
}

// recordNode builds the serialized form of a draft: known keys first in
// canonical order, false booleans omitted, then every unrecognized key
// of carry appended in its original order.
func recordNode(d core.Draft, carry *yaml.Node) *yaml.Node {
	rec := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	bodyKey := keyReplace
	if d.Format == core.FormatRich {
		bodyKey = keyMarkdown
	}

	rec.Content = append(rec.Content, scalarNode(keyTrigger), stringNode(d.Trigger))
	rec.Content = append(rec.Content, scalarNode(bodyKey), stringNode(d.Body))
	if d.WholeWord {
		rec.Content = append(rec.Content, scalarNode(keyWord), boolNode(true))
	}
	if d.PropagateCase {
		rec.Content = append(rec.Content, scalarNode(keyPropagateCase), boolNode(true))
	}

	if carry != nil && carry.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(carry.Content); i += 2 {
			switch carry.Content[i].Value {
			case keyTrigger, keyReplace, keyMarkdown, keyWord, keyPropagateCase:
				continue
			}
			rec.Content = append(rec.Content, carry.Content[i], carry.Content[i+1])
		}
	}
	return rec
}

// mappingValue returns the value node for key in mapping m, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// cloneNode deep-copies a node tree so a record can be duplicated into
// another document without sharing state with its source.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child)
		}
	}
	return &c
}

func stringify(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return ""
	}
	return fmt.Sprint(v)
}

func boolValue(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

func scalarNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func stringNode(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if strings.Contains(value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func boolNode(value bool) *yaml.Node {
	v := "false"
	if value {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}
