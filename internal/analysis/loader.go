package analysis

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/treecheck/internal/errors"
)

// Format identifies the serialization of a tree file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a format from the file extension, falling back to
// sniffing the content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// TreeRepository defines the interface for loading and saving tree documents.
type TreeRepository interface {
	// Load reads a Document from a file
	Load(path string) (*Document, error)

	// Save writes a Document to a file
	Save(doc *Document, path string) error
}

// FileTreeRepository implements TreeRepository for JSON and YAML files
type FileTreeRepository struct{}

// NewFileTreeRepository creates a new file-based tree repository
func NewFileTreeRepository() *FileTreeRepository {
	return &FileTreeRepository{}
}

// Load reads a Document from a JSON or YAML file. The file may hold either
// a bare list of root nodes or a {name, nodes} envelope.
func (r *FileTreeRepository) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, errors.NewTreeNotFoundError(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read tree file", err)
	}

	format := DetectFormat(path, data)
	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.NewTreeUnmarshalError(path, string(format), err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Save writes a Document to a file, choosing the format from the extension
func (r *FileTreeRepository) Save(doc *Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed, "create directory", err)
		}
	}

	data, err := Encode(doc, DetectFormat(path, nil))
	if err != nil {
		return errors.Wrap(errors.ErrCodeTreeMarshal, "encode tree", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write tree file", err)
	}
	return nil
}

// Decode parses a tree document in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &doc.Nodes); err != nil {
				return nil, fmt.Errorf("unmarshal tree: %w", err)
			}
			return &doc, nil
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		if len(root.Content) == 0 {
			return &doc, nil
		}
		body := root.Content[0]
		var err error
		if body.Kind == yaml.SequenceNode {
			err = body.Decode(&doc.Nodes)
		} else {
			err = body.Decode(&doc)
		}
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}

	return &doc, nil
}

// Encode serializes a tree document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal tree: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal tree: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}
}

// Default instance for package-level functions
var defaultRepository = NewFileTreeRepository()

// LoadDocument reads a Document using the default repository.
func LoadDocument(path string) (*Document, error) {
	return defaultRepository.Load(path)
}

// SaveDocument writes a Document using the default repository.
func SaveDocument(doc *Document, path string) error {
	return defaultRepository.Save(doc, path)
}

// Compile-time verification that FileTreeRepository implements TreeRepository
var _ TreeRepository = (*FileTreeRepository)(nil)
