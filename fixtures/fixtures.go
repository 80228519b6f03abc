// Package fixtures loads schedule snapshots from YAML or JSON files and
// provides the builtin demo dataset used when no file is configured.
package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/orsched/core/schedule"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// Format names a fixture encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor maps a file path to its encoding.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a snapshot from path. An empty path returns Default().
func Load(path string) (schedule.Snapshot, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatFor(path)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Snapshot{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode parses a snapshot and validates every booking window.
func Decode(r io.Reader, format Format) (schedule.Snapshot, error) {
	var snap schedule.Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
			return schedule.Snapshot{}, fmt.Errorf("decode yaml fixtures: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return schedule.Snapshot{}, fmt.Errorf("decode json fixtures: %w", err)
		}
	default:
		return schedule.Snapshot{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	for _, s := range snap.Surgeries {
		if err := s.Validate(); err != nil {
			return schedule.Snapshot{}, err
		}
	}
	return snap, nil
}
