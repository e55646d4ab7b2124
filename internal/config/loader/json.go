package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/stratum/internal/config/value"
	"github.com/dshills/stratum/internal/log"
)

// JSONLoader loads configuration from JSON files.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (value.Value, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *JSONLoader) LoadFrom(path string) (value.Value, error) {
	data, err := readFile(l.fs, path)
	if err != nil {
		return value.Value{}, err
	}
	return ParseJSON(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, &ReadError{Path: "<reader>", Err: err}
	}
	return ParseJSON("<reader>", data)
}

// ParseJSON parses JSON text into a value tree, preserving object key
// order as written in the document.
func ParseJSON(source string, data []byte) (value.Value, error) {
	if !gjson.ValidBytes(data) {
		return value.Value{}, &ParseError{
			Path:    source,
			Message: "invalid JSON document",
		}
	}

	root, err := fromJSON(gjson.ParseBytes(data))
	if err != nil {
		return value.Value{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	log.Debugf("parsed %s as JSON", source)
	return root, nil
}

// fromJSON converts a gjson node into a value tree.
func fromJSON(r gjson.Result) (value.Value, error) {
	switch {
	case r.Type == gjson.Null:
		return value.Nil(), nil
	case r.Type == gjson.True:
		return value.Bool(true), nil
	case r.Type == gjson.False:
		return value.Bool(false), nil
	case r.Type == gjson.Number:
		if isIntegral(r.Raw) {
			return value.Int(r.Int()), nil
		}
		return value.Float(r.Float()), nil
	case r.Type == gjson.String:
		return value.Str(r.String()), nil
	case r.IsArray():
		var items []value.Value
		var convErr error
		r.ForEach(func(_, item gjson.Result) bool {
			v, err := fromJSON(item)
			if err != nil {
				convErr = err
				return false
			}
			items = append(items, v)
			return true
		})
		if convErr != nil {
			return value.Value{}, convErr
		}
		return value.Array(items...), nil
	case r.IsObject():
		tab := value.NewTable()
		var convErr error
		r.ForEach(func(key, item gjson.Result) bool {
			v, err := fromJSON(item)
			if err != nil {
				convErr = err
				return false
			}
			tab.Set(key.String(), v)
			return true
		})
		if convErr != nil {
			return value.Value{}, convErr
		}
		return value.TableValue(tab), nil
	default:
		return value.Value{}, fmt.Errorf("unsupported JSON node %q", r.Raw)
	}
}

// isIntegral reports whether a raw JSON number has no fraction or
// exponent, so 2 stays an int while 2.0 becomes a float.
func isIntegral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}
