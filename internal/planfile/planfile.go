package planfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"stagedtimer/internal/apperr"
	"stagedtimer/internal/fileutil"
	"stagedtimer/internal/schedule"
)

// Format identifies a plan file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is the on-disk plan representation.
type File struct {
	Name        string           `yaml:"name,omitempty" toml:"name,omitempty"`
	Description string           `yaml:"description,omitempty" toml:"description,omitempty"`
	Wait        string           `yaml:"wait,omitempty" toml:"wait,omitempty"`
	Stages      []schedule.Entry `yaml:"stages" toml:"stages"`
}

// LoadError describes a plan file that could not be read or parsed.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Cause }

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", &LoadError{
			File:    path,
			Message: "unsupported plan file extension (use .yaml, .yml or .toml)",
			Cause:   apperr.ErrInvalidArgument,
		}
	}
}

// Parse decodes data in the given format and parses every duration token.
func Parse(data []byte, format Format) (File, schedule.Plan, error) {
	var file File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return File{}, schedule.Plan{}, &LoadError{Message: "failed to parse YAML", Cause: configErr(err)}
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return File{}, schedule.Plan{}, &LoadError{Message: "failed to parse TOML", Cause: configErr(err)}
		}
	default:
		return File{}, schedule.Plan{}, &LoadError{Message: fmt.Sprintf("unknown format %q", format), Cause: apperr.ErrInvalidArgument}
	}

	plan, err := schedule.ParsePlan(file.Wait, file.Stages)
	if err != nil {
		return File{}, schedule.Plan{}, &LoadError{Message: "invalid plan", Cause: err}
	}
	return file, plan, nil
}

// Load reads and parses the plan file at path.
func Load(path string) (File, schedule.Plan, error) {
	format, err := FormatFor(path)
	if err != nil {
		return File{}, schedule.Plan{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, schedule.Plan{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	file, plan, err := Parse(data, format)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return File{}, schedule.Plan{}, le
		}
		return File{}, schedule.Plan{}, &LoadError{File: path, Message: err.Error()}
	}
	return file, plan, nil
}

// Encode renders plan in the given format.
func Encode(name string, plan schedule.Plan, format Format) ([]byte, error) {
	wait, entries := plan.Entries()
	file := File{Name: name, Wait: wait, Stages: entries}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return nil, fmt.Errorf("encode yaml plan: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml plan: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return nil, fmt.Errorf("encode toml plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown plan format %q", format)
	}
	return buf.Bytes(), nil
}

// Save writes plan to path, choosing the format from the extension. Paths
// without a recognised extension are written as YAML.
func Save(path, name string, plan schedule.Plan) error {
	format, err := FormatFor(path)
	if err != nil {
		format = FormatYAML
	}
	data, err := Encode(name, plan, format)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan file: %w", err)
	}
	return nil
}

func configErr(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrConfiguration, err)
}
