package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"discauthor/internal/discgraph"
	"discauthor/internal/services"
)

// Format is a project file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the syntax from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported project extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Project is a loaded, fully attached disc graph.
type Project struct {
	Name     string
	Path     string
	Disc     *discgraph.Disc
	Keys     map[string]discgraph.ID
	Detached []discgraph.Node
}

// Load reads and builds the project at path. Relative video paths and globs
// are resolved against the project file's directory.
func Load(path string) (*Project, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "project", "load", "", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "project", "load", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}
	proj, err := Parse(data, format, filepath.Dir(abs))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "project", "load", path, err)
	}
	proj.Path = abs
	if proj.Name == "" {
		proj.Name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	return proj, nil
}

// Parse decodes data and builds the disc graph. Unknown fields are rejected.
func Parse(data []byte, format Format, baseDir string) (*Project, error) {
	file, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Build(file, baseDir)
}

// Decode decodes a project document without building it.
func Decode(data []byte, format Format) (*File, error) {
	var file File
	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported project format %q", format)
	}
	return &file, nil
}
