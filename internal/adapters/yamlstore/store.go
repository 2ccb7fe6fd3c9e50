// Package yamlstore reads and writes Espanso match files. Loading is
// forgiving: files that fail to parse are logged and skipped, never fatal.
// Saving replaces only the matches key, keeping unrelated top-level keys
// (and, best effort, their order and comments) intact.
package yamlstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"ezpanso/internal/domain"
	"ezpanso/internal/logging"
	"ezpanso/internal/ports"
)

const matchesKey = "matches"

// Store implements ports.SnippetStore on the local filesystem.
type Store struct {
	log zerolog.Logger
}

// Ensure Store implements SnippetStore
var _ ports.SnippetStore = (*Store)(nil)

// NewStore creates a new filesystem-backed store.
func NewStore() *Store {
	return &Store{log: logging.GetLogger("yamlstore")}
}

// LoadDirectory walks root recursively and returns one FileEntry per YAML
// file that parses to a mapping with at least one match. Filenames starting
// with "_" (package manifests and sources) are skipped.
func (s *Store) LoadDirectory(root string) ([]*domain.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("match directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("match directory: %s is not a directory", root)
	}

	var entries []*domain.FileEntry
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "_") {
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yml", ".yaml":
		default:
			return nil
		}

		matches, err := s.LoadFile(path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("skipping unparseable file")
			return nil
		}
		if len(matches) == 0 {
			return nil
		}
		entries = append(entries, &domain.FileEntry{Path: path, Matches: matches})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	s.log.Info().Str("root", root).Int("files", len(entries)).Msg("loaded match directory")
	return entries, nil
}

// LoadFile parses a single match file into its matches.
func (s *Store) LoadFile(path string) ([]*domain.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil // empty file
	}
	doc := documentMapping(&root)
	if doc == nil {
		return nil, fmt.Errorf("document is not a mapping")
	}

	seq := mappingValue(doc, matchesKey)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil, nil
	}

	var matches []*domain.Match
	for _, item := range seq.Content {
		m, err := decodeMatch(item)
		if err != nil {
			s.log.Debug().Err(err).Str("path", path).Msg("skipping malformed match")
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func decodeMatch(node *yaml.Node) (*domain.Match, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("match entry is not a mapping")
	}

	m := &domain.Match{}
	haveTrigger := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "trigger":
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("trigger is not a scalar")
			}
			m.Trigger = value.Value
			haveTrigger = true
		case "replace":
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("replace is not a scalar")
			}
			m.Replace = value.Value
		default:
			var decoded any
			if err := value.Decode(&decoded); err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			m.Extra = append(m.Extra, domain.ExtraField{Key: key, Value: decoded})
		}
	}
	if !haveTrigger {
		return nil, fmt.Errorf("match has no trigger")
	}
	return m, nil
}

// SaveFile writes matches back to path. The existing document is re-read so
// unrelated top-level keys survive; when it cannot be parsed anymore, a
// fresh document holding only the matches key is written instead.
func (s *Store) SaveFile(path string, matches []*domain.Match) error {
	root := s.readExisting(path)
	doc := documentMapping(root)

	matchesNode, err := encodeMatches(matches)
	if err != nil {
		return fmt.Errorf("encoding matches for %s: %w", path, err)
	}
	setMappingValue(doc, matchesKey, matchesNode)

	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("write failed")
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// readExisting parses the file's current document, falling back to an empty
// mapping when the file is missing or no longer parseable.
func (s *Store) readExisting(path string) *yaml.Node {
	data, err := os.ReadFile(path)
	if err == nil {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err == nil && documentMapping(&root) != nil {
			return &root
		}
		s.log.Warn().Str("path", path).Msg("existing file unparseable, rewriting matches only")
	}
	return emptyDocument()
}

// CreateFile writes a fresh match file seeded with one template match.
func (s *Store) CreateFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("creating %s: file already exists", path)
	}
	template := []*domain.Match{{Trigger: ":test", Replace: "result"}}
	return s.SaveFile(path, template)
}

// DeleteFile removes a match file. A file already gone is not an error.
func (s *Store) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// ModTime returns the file's modification time for status display, or an
// empty string when the file cannot be inspected.
func (s *Store) ModTime(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format("2006-01-02 15:04")
}

// --- yaml.Node helpers ---

func emptyDocument() *yaml.Node {
	return &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			{Kind: yaml.MappingNode, Tag: "!!map"},
		},
	}
}

// documentMapping returns the top-level mapping of a parsed document, or nil
// when the document is empty or not a mapping.
func documentMapping(root *yaml.Node) *yaml.Node {
	if root == nil || root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil
	}
	return root.Content[0]
}

func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func encodeMatches(matches []*domain.Match) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, m := range matches {
		node, err := encodeMatch(m)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, node)
	}
	return seq, nil
}

func encodeMatch(m *domain.Match) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	node.Content = append(node.Content,
		scalarNode("trigger"), stringNode(m.Trigger),
		scalarNode("replace"), stringNode(m.Replace),
	)
	for _, f := range m.Extra {
		var value yaml.Node
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		node.Content = append(node.Content, scalarNode(f.Key), &value)
	}
	return node, nil
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// stringNode renders multiline values in block style, the way Espanso users
// write them by hand.
func stringNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.Contains(s, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}
