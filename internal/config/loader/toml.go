package loader

import (
	"errors"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stratum/internal/config/value"
	"github.com/dshills/stratum/internal/log"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *TOMLLoader) Load() (value.Value, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (value.Value, error) {
	data, err := readFile(l.fs, path)
	if err != nil {
		return value.Value{}, err
	}
	return ParseTOML(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, &ReadError{Path: "<reader>", Err: err}
	}
	return ParseTOML("<reader>", data)
}

// ParseTOML parses TOML text into a value tree. The source name is used
// in error messages only.
func ParseTOML(source string, data []byte) (value.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			perr.Line, perr.Column = decodeErr.Position()
		}
		return value.Value{}, perr
	}

	root, err := value.FromAny(raw)
	if err != nil {
		return value.Value{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	log.Debugf("parsed %s as TOML", source)
	return root, nil
}
