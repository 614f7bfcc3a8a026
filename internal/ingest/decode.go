package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// batchFile is the object form of an import file; a bare array is also
// accepted.
type batchFile struct {
	Matches []MatchInput `json:"matches" yaml:"matches"`
}

// Decode reads a batch of match inputs. Files named *.yaml or *.yml are
// decoded as YAML, everything else as JSON.
func Decode(r io.Reader, name string) ([]MatchInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]MatchInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []MatchInput
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode matches: %w", err)
		}
		return list, nil
	}
	var f batchFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return f.Matches, nil
}

func decodeYAML(data []byte) ([]MatchInput, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var list []MatchInput
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode matches: %w", err)
		}
		return list, nil
	}
	var f batchFile
	if err := node.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return f.Matches, nil
}
