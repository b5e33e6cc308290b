package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Canonicalize returns a canonical JSON representation of the forest.
// Struct fields marshal in declaration order and map keys are sorted by
// encoding/json. YAML maps with non-string keys are rewritten with their
// keys formatted by fmt.Sprint first; metadata that still cannot be
// encoded as JSON (NaN, channels, funcs) makes Canonicalize fail.
// The input forest is not modified.
func Canonicalize(f Forest) ([]byte, error) {
	if f == nil {
		f = Forest{}
	}
	return json.Marshal(canonicalForest(f))
}

func canonicalForest(f Forest) Forest {
	out := make(Forest, len(f))
	for i, n := range f {
		if n == nil {
			continue
		}
		c := *n
		if n.Metadata != nil {
			c.Metadata = canonicalValue(n.Metadata).(map[string]any)
		}
		if n.Children != nil {
			c.Children = canonicalForest(n.Children)
		}
		out[i] = &c
	}
	return out
}

// canonicalValue copies v, turning every map into map[string]any.
func canonicalValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = canonicalValue(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = canonicalValue(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = canonicalValue(item)
		}
		return s
	default:
		return v
	}
}

// Fingerprint computes the blake3 hash of the canonicalized forest as hex.
func Fingerprint(f Forest) (string, error) {
	canonical, err := Canonicalize(f)
	if err != nil {
		return "", fmt.Errorf("canonicalize tree: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash tree: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
