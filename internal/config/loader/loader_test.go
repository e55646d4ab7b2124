package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/dshills/stratum/internal/config/value"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

// scopeOption fetches root[scope][name] or fails the test.
func scopeOption(t *testing.T, root value.Value, scope, name string) value.Value {
	t.Helper()

	tab, ok := root.AsTable()
	if !ok {
		t.Fatalf("root is %s, want table", root.Kind())
	}
	sv, ok := tab.Get(scope)
	if !ok {
		t.Fatalf("scope %q not found", scope)
	}
	st, ok := sv.AsTable()
	if !ok {
		t.Fatalf("scope %q is %s, want table", scope, sv.Kind())
	}
	v, ok := st.Get(name)
	if !ok {
		t.Fatalf("option %q not found in scope %q", name, scope)
	}
	return v
}

func TestTOMLLoaderLoad(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[server]
port = 8080
debug = true
ratio = 0.5
name = "main"
tags = ["a", "b"]
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	root, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v := scopeOption(t, root, "server", "port"); !v.Equal(value.Int(8080)) {
		t.Errorf("port = %s, want 8080", v)
	}
	if v := scopeOption(t, root, "server", "debug"); !v.Equal(value.Bool(true)) {
		t.Errorf("debug = %s, want true", v)
	}
	if v := scopeOption(t, root, "server", "ratio"); !v.Equal(value.Float(0.5)) {
		t.Errorf("ratio = %s, want 0.5", v)
	}
	if v := scopeOption(t, root, "server", "name"); !v.Equal(value.Str("main")) {
		t.Errorf("name = %s, want \"main\"", v)
	}
	if v := scopeOption(t, root, "server", "tags"); !v.Equal(value.Strings("a", "b")) {
		t.Errorf("tags = %s, want [a, b]", v)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[scope\nkey = 1")

	loader := NewTOMLLoaderWithFS(memfs, "/bad.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("Load of invalid TOML succeeded")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("ParseError.Path = %q, want /bad.toml", perr.Path)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("errors.Is(err, ErrParse) = false")
	}
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/absent.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("Load of missing file succeeded")
	}

	var rerr *ReadError
	if !errors.As(err, &rerr) {
		t.Fatalf("error is %T, want *ReadError", err)
	}
	if !errors.Is(err, ErrRead) {
		t.Error("errors.Is(err, ErrRead) = false")
	}
}

func TestJSONLoaderLoad(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.json", `{
  "zeta": {"count": 3, "rate": 1.5, "on": false, "items": ["x"]},
  "alpha": {"name": "n"}
}`)

	loader := NewJSONLoaderWithFS(memfs, "/config.json")
	root, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v := scopeOption(t, root, "zeta", "count"); !v.Equal(value.Int(3)) {
		t.Errorf("count = %s, want int 3", v)
	}
	if v := scopeOption(t, root, "zeta", "rate"); !v.Equal(value.Float(1.5)) {
		t.Errorf("rate = %s, want float 1.5", v)
	}
	if v := scopeOption(t, root, "zeta", "on"); !v.Equal(value.Bool(false)) {
		t.Errorf("on = %s, want false", v)
	}
	if v := scopeOption(t, root, "zeta", "items"); !v.Equal(value.Strings("x")) {
		t.Errorf("items = %s, want [x]", v)
	}

	// Document order, not sorted order.
	tab, _ := root.AsTable()
	keys := tab.Keys()
	if len(keys) != 2 || keys[0] != "zeta" || keys[1] != "alpha" {
		t.Errorf("Keys() = %v, want [zeta alpha]", keys)
	}
}

func TestJSONLoaderNumberShapes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/n.json", `{"s": {"i": 2, "f": 2.0, "e": 2e3}}`)

	root, err := NewJSONLoaderWithFS(memfs, "/n.json").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v := scopeOption(t, root, "s", "i"); v.Kind() != value.KindInt {
		t.Errorf("i kind = %s, want int", v.Kind())
	}
	if v := scopeOption(t, root, "s", "f"); v.Kind() != value.KindFloat {
		t.Errorf("f kind = %s, want float", v.Kind())
	}
	if v := scopeOption(t, root, "s", "e"); v.Kind() != value.KindFloat {
		t.Errorf("e kind = %s, want float", v.Kind())
	}
}

func TestJSONLoaderParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.json", `{"a": `)

	_, err := NewJSONLoaderWithFS(memfs, "/bad.json").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
}

func TestYAMLLoaderLoad(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
worker:
  threads: 4
  backoff: 0.25
  verbose: yes
  queues:
    - fast
    - slow
logging:
  level: info
`)

	loader := NewYAMLLoaderWithFS(memfs, "/config.yaml")
	root, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v := scopeOption(t, root, "worker", "threads"); !v.Equal(value.Int(4)) {
		t.Errorf("threads = %s, want 4", v)
	}
	if v := scopeOption(t, root, "worker", "backoff"); !v.Equal(value.Float(0.25)) {
		t.Errorf("backoff = %s, want 0.25", v)
	}
	if v := scopeOption(t, root, "worker", "verbose"); !v.Equal(value.Bool(true)) {
		t.Errorf("verbose = %s, want true", v)
	}
	if v := scopeOption(t, root, "worker", "queues"); !v.Equal(value.Strings("fast", "slow")) {
		t.Errorf("queues = %s, want [fast, slow]", v)
	}

	// Mapping order follows the document.
	tab, _ := root.AsTable()
	keys := tab.Keys()
	if len(keys) != 2 || keys[0] != "worker" || keys[1] != "logging" {
		t.Errorf("Keys() = %v, want [worker logging]", keys)
	}
}

func TestYAMLLoaderEmptyDocument(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yaml", "")

	root, err := NewYAMLLoaderWithFS(memfs, "/empty.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tab, ok := root.AsTable()
	if !ok || tab.Len() != 0 {
		t.Errorf("empty document = %s, want empty table", root)
	}
}

func TestYAMLLoaderParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "a: [1, 2")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()
	tests := []struct {
		path string
		want string
	}{
		{"/a.toml", "*loader.TOMLLoader"},
		{"/a.json", "*loader.JSONLoader"},
		{"/a.yaml", "*loader.YAMLLoader"},
		{"/a.yml", "*loader.YAMLLoader"},
		{"/a.conf", "*loader.TOMLLoader"},
	}

	for _, tt := range tests {
		got := ForPath(memfs, tt.path)
		var name string
		switch got.(type) {
		case *TOMLLoader:
			name = "*loader.TOMLLoader"
		case *JSONLoader:
			name = "*loader.JSONLoader"
		case *YAMLLoader:
			name = "*loader.YAMLLoader"
		}
		if name != tt.want {
			t.Errorf("ForPath(%s) = %s, want %s", tt.path, name, tt.want)
		}
	}
}
