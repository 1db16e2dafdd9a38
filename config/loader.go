// Package config loads and persists the aiswitch configuration file. The
// file is read fresh on every invocation; the only mutation this tool ever
// performs is updating the default pointer.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"aiswitch/config/models"
)

// Format identifies the on-disk serialization of the config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// NotFoundError is returned when no config file exists at any search path.
type NotFoundError struct {
	SearchPaths []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no config file found, searched: %s", strings.Join(e.SearchPaths, ", "))
}

// ParseError is returned when a config file exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidError is returned when the file parses but fails structural checks.
type InvalidError struct {
	Path     string
	Problems []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("config file %s is invalid: %s", e.Path, strings.Join(e.Problems, "; "))
}

// LoadResult is a parsed config file plus the provenance needed to write
// it back in the same place and format.
type LoadResult struct {
	File   *models.File
	Path   string
	Format Format
	Raw    []byte
}

// SearchPaths returns the candidate config file locations in precedence
// order: current directory first, then the XDG config directory.
func SearchPaths() []string {
	paths := []string{
		"aiswitch.yaml",
		"aiswitch.json",
		".aiswitch.yaml",
		".aiswitch.json",
	}
	if dir := configDir(); dir != "" {
		paths = append(paths,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.json"),
		)
	}
	return paths
}

// configDir returns the aiswitch directory under XDG config home.
func configDir() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "aiswitch")
}

// Load finds and parses the config file from the standard search paths.
func Load() (*LoadResult, error) {
	paths := SearchPaths()
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			log.Debugf("using config file %s", path)
			return LoadPath(path)
		}
	}
	return nil, &NotFoundError{SearchPaths: paths}
}

// LoadPath parses the config file at an explicit path. The file is read
// under a shared lock so a concurrent set-default cannot interleave.
func LoadPath(path string) (*LoadResult, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{SearchPaths: []string{path}}
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := lockFileShared(file); err != nil {
		return nil, fmt.Errorf("failed to lock config file: %w", err)
	}
	defer func() {
		if err := unlockFile(file); err != nil {
			log.Warnf("failed to unlock config file: %v", err)
		}
	}()

	// Read through the locked handle; a reopen by path could race a rename.
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := detectFormat(path, data)
	parsed := &models.File{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, parsed); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		if err := yaml.Unmarshal(data, parsed); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	if problems := validateStructure(parsed); len(problems) > 0 {
		return nil, &InvalidError{Path: path, Problems: problems}
	}

	return &LoadResult{File: parsed, Path: path, Format: format, Raw: data}, nil
}

// detectFormat picks the serialization from the file extension, falling
// back to sniffing the first non-space byte.
func detectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// validateStructure performs file-shape validation, distinct from the
// per-entry validation engine. Duplicate names are tolerated (first match
// wins); missing required fields are not.
func validateStructure(f *models.File) []string {
	var problems []string
	for i, p := range f.Providers {
		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("providers[%d] has no name", i))
		}
	}
	for i, e := range f.Configs {
		switch {
		case e.Name == "":
			problems = append(problems, fmt.Sprintf("configs[%d] has no name", i))
		case e.Provider == "":
			problems = append(problems, fmt.Sprintf("config '%s' has no provider", e.Name))
		case e.Model == "":
			problems = append(problems, fmt.Sprintf("config '%s' has no model", e.Name))
		}
	}
	return problems
}
