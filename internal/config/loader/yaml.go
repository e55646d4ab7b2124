package loader

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dshills/stratum/internal/config/value"
	"github.com/dshills/stratum/internal/log"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (value.Value, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *YAMLLoader) LoadFrom(path string) (value.Value, error) {
	data, err := readFile(l.fs, path)
	if err != nil {
		return value.Value{}, err
	}
	return ParseYAML(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *YAMLLoader) LoadFromReader(r io.Reader) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, &ReadError{Path: "<reader>", Err: err}
	}
	return ParseYAML("<reader>", data)
}

// ParseYAML parses YAML text into a value tree. The node API is used
// instead of plain unmarshaling so mapping key order survives.
func ParseYAML(source string, data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	// An empty document has no content nodes.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return value.TableValue(value.NewTable()), nil
	}

	root, err := fromYAMLNode(doc.Content[0])
	if err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var nodeErr *yamlNodeError
		if errors.As(err, &nodeErr) {
			perr.Line = nodeErr.line
			perr.Column = nodeErr.column
		}
		return value.Value{}, perr
	}

	log.Debugf("parsed %s as YAML", source)
	return root, nil
}

// yamlNodeError carries node position for scalar conversion failures.
type yamlNodeError struct {
	line   int
	column int
	msg    string
}

func (e *yamlNodeError) Error() string {
	return e.msg
}

// fromYAMLNode converts a yaml.Node into a value tree.
func fromYAMLNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		tab := value.NewTable()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return value.Value{}, err
			}
			tab.Set(key, v)
		}
		return value.TableValue(tab), nil
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromYAMLNode(item)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Array(items...), nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return value.Value{}, &yamlNodeError{
			line:   n.Line,
			column: n.Column,
			msg:    fmt.Sprintf("unsupported YAML node kind %d", n.Kind),
		}
	}
}

// fromYAMLScalar converts a scalar node using its resolved tag.
func fromYAMLScalar(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Nil(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			// YAML 1.1 spellings the strconv parser doesn't know.
			switch n.Value {
			case "yes", "Yes", "YES", "on", "On", "ON":
				return value.Bool(true), nil
			case "no", "No", "NO", "off", "Off", "OFF":
				return value.Bool(false), nil
			}
			return value.Value{}, &yamlNodeError{
				line:   n.Line,
				column: n.Column,
				msg:    fmt.Sprintf("invalid bool %q", n.Value),
			}
		}
		return value.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return value.Value{}, &yamlNodeError{
				line:   n.Line,
				column: n.Column,
				msg:    fmt.Sprintf("invalid integer %q", n.Value),
			}
		}
		return value.Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return value.Value{}, &yamlNodeError{
				line:   n.Line,
				column: n.Column,
				msg:    fmt.Sprintf("invalid float %q", n.Value),
			}
		}
		return value.Float(f), nil
	default:
		return value.Str(n.Value), nil
	}
}
