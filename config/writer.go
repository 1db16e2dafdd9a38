package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"aiswitch/config/storage"
)

// SetDefault updates the default pointer and persists the file back to its
// original path and format. Both formats are edited surgically: sjson for
// JSON, the yaml node tree for YAML. Re-marshaling the structs would turn an
// omitted models key into an explicit empty list, which changes validation
// semantics for that provider.
func SetDefault(lr *LoadResult, name string) error {
	if lr.File.FindEntry(name) == nil {
		return fmt.Errorf("configuration '%s' does not exist", name)
	}
	lr.File.Default = name

	var data []byte
	switch lr.Format {
	case FormatJSON:
		updated, err := sjson.Set(string(lr.Raw), "default", name)
		if err != nil {
			return fmt.Errorf("failed to update config content: %w", err)
		}
		data = []byte(updated)
	default:
		out, err := setYAMLDefault(lr.Raw, name)
		if err != nil {
			return fmt.Errorf("failed to update config content: %w", err)
		}
		data = out
	}

	// Exclusive lock on the current file so a concurrent reader holding the
	// shared lock finishes before the backup+rename.
	f, err := os.OpenFile(lr.Path, os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	if err := lockFileExclusive(f); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer func() { _ = unlockFile(f) }()

	if err := storage.AtomicWriteFile(lr.Path, data, true); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	lr.Raw = data
	return nil
}

// setYAMLDefault sets the top-level default scalar in the YAML document,
// touching no other node. Key order, comments, and omitted keys all survive.
func setYAMLDefault(raw []byte, name string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config document is not a mapping")
	}

	root := doc.Content[0]
	updated := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "default" {
			root.Content[i+1].SetString(name)
			updated = true
			break
		}
	}
	if !updated {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "default"}
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		root.Content = append([]*yaml.Node{key, value}, root.Content...)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteActiveScript writes the eval-able activation script next to the XDG
// config file so shell integrations can source the last activated triple.
func WriteActiveScript(content string) (string, error) {
	dir := configDir()
	if dir == "" {
		return "", fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(dir, "active.env")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write activation script: %w", err)
	}
	return path, nil
}
