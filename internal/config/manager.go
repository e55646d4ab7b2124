package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stratum/internal/config/loader"
	"github.com/dshills/stratum/internal/config/notify"
	"github.com/dshills/stratum/internal/config/option"
	"github.com/dshills/stratum/internal/config/store"
	"github.com/dshills/stratum/internal/config/watcher"
	"github.com/dshills/stratum/internal/log"
)

// Manager holds an ordered list of configuration layers and provides
// merged access. Later layers have higher precedence. The merged store
// is cached and rebuilt lazily after any layer changes.
//
// Manager implements option.Source by reading through the merged store,
// so callers resolve options against the effective configuration
// without caring which layer supplied a value.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer
	merged store.Store
	dirty  bool

	fsys     loader.FileSystem
	notifier *notify.Notifier
	watch    *watcher.Watcher
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithFileSystem sets the filesystem layers are read from.
func WithFileSystem(fsys loader.FileSystem) ManagerOption {
	return func(m *Manager) {
		m.fsys = fsys
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		fsys:     loader.DefaultFS(),
		notifier: notify.New(),
		dirty:    true,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Notifier returns the manager's change notifier for subscriptions.
func (m *Manager) Notifier() *notify.Notifier {
	return m.notifier
}

// AddFile loads a layer file and appends it as the highest-precedence
// layer. The format is chosen by file extension.
func (m *Manager) AddFile(name, path string) (*Layer, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	s, err := store.FromFile(m.fsys, absPath)
	if err != nil {
		return nil, err
	}

	layer := &Layer{
		ID:       uuid.New(),
		Name:     name,
		Path:     absPath,
		Store:    s,
		LoadedAt: time.Now(),
	}
	if err := m.appendLayer(layer); err != nil {
		return nil, err
	}

	m.mu.RLock()
	w := m.watch
	m.mu.RUnlock()
	if w != nil {
		if err := w.Watch(absPath); err != nil {
			log.Warnf("watch %s: %v", absPath, err)
		}
	}

	log.Infof("added layer %s from %s", name, absPath)
	return layer, nil
}

// AddStore appends an in-memory store as the highest-precedence layer.
func (m *Manager) AddStore(name string, s store.Store) (*Layer, error) {
	layer := &Layer{
		ID:       uuid.New(),
		Name:     name,
		Store:    s,
		LoadedAt: time.Now(),
	}
	if err := m.appendLayer(layer); err != nil {
		return nil, err
	}
	return layer, nil
}

func (m *Manager) appendLayer(layer *Layer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.layers {
		if existing.Name == layer.Name {
			return fmt.Errorf("layer already exists: %s", layer.Name)
		}
	}

	m.layers = append(m.layers, layer)
	m.dirty = true
	return nil
}

// RemoveLayer removes a layer by name. Returns true if it was found.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	var removed *Layer
	for i, layer := range m.layers {
		if layer.Name == name {
			removed = layer
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			break
		}
	}
	m.mu.Unlock()

	if removed == nil {
		return false
	}
	if removed.IsFile() && m.watch != nil {
		if err := m.watch.Unwatch(removed.Path); err != nil {
			log.Warnf("unwatch %s: %v", removed.Path, err)
		}
	}
	m.notifier.NotifyRemove(removed.ID, removed.Name, removed.Path)
	return true
}

// Layer returns a layer by name, nil when absent.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLayer(name)
}

// Layers returns the layers in precedence order, lowest first.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// LayerCount returns the number of layers.
func (m *Manager) LayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Merged returns the effective configuration: every layer merged in
// precedence order. The result is cached until a layer changes.
func (m *Manager) Merged() store.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mergedLocked()
}

// mergedLocked rebuilds the cache if needed. Merging consumes its
// inputs, so each layer contributes a clone.
func (m *Manager) mergedLocked() store.Store {
	if !m.dirty {
		return m.merged
	}

	stores := make([]store.Store, 0, len(m.layers))
	for _, layer := range m.layers {
		stores = append(stores, layer.Store.Clone())
	}
	m.merged = store.MergeAll(stores...)
	m.dirty = false
	return m.merged
}

// Reload re-reads a file layer from disk. A reload failure leaves the
// layer's previous contents in place.
func (m *Manager) Reload(name string) error {
	m.mu.Lock()
	layer := m.findLayer(name)
	m.mu.Unlock()

	if layer == nil {
		return fmt.Errorf("layer not found: %s", name)
	}
	if !layer.IsFile() {
		return fmt.Errorf("layer is not file-backed: %s", name)
	}
	return m.reloadLayer(layer)
}

// ReloadPath re-reads the file layer registered at the given path.
func (m *Manager) ReloadPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	var layer *Layer
	for _, l := range m.layers {
		if l.Path == absPath {
			layer = l
			break
		}
	}
	m.mu.Unlock()

	if layer == nil {
		return fmt.Errorf("no layer registered for path: %s", absPath)
	}
	return m.reloadLayer(layer)
}

func (m *Manager) reloadLayer(layer *Layer) error {
	s, err := store.FromFile(m.fsys, layer.Path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	layer.Store = s
	layer.LoadedAt = time.Now()
	m.dirty = true
	m.mu.Unlock()

	log.Infof("reloaded layer %s from %s", layer.Name, layer.Path)
	m.notifier.NotifyReload(layer.ID, layer.Name, layer.Path)
	return nil
}

// StartWatching begins watching every file layer for live reload.
// Layers added later are watched as well.
func (m *Manager) StartWatching() error {
	m.mu.Lock()
	if m.watch != nil {
		m.mu.Unlock()
		return nil
	}
	w, err := watcher.New()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.watch = w
	layers := make([]*Layer, len(m.layers))
	copy(layers, m.layers)
	m.mu.Unlock()

	w.OnChange(m.handleEvent)
	for _, layer := range layers {
		if layer.IsFile() {
			if err := w.Watch(layer.Path); err != nil {
				return err
			}
		}
	}
	w.Start()
	return nil
}

// Close shuts down the watcher and the notifier.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watch
	m.watch = nil
	m.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	m.notifier.Close()
	return err
}

// handleEvent applies one watcher event to the owning layer.
func (m *Manager) handleEvent(event watcher.Event) {
	m.mu.Lock()
	var layer *Layer
	for _, l := range m.layers {
		if l.Path == event.Path {
			layer = l
			break
		}
	}
	m.mu.Unlock()

	if layer == nil {
		return
	}

	switch event.Op {
	case watcher.OpRemove:
		// The file is gone; the layer stops contributing options until
		// it reappears.
		m.mu.Lock()
		layer.Store = store.Empty()
		m.dirty = true
		m.mu.Unlock()
		log.Warnf("layer file removed: %s", event.Path)
		m.notifier.NotifyRemove(layer.ID, layer.Name, layer.Path)

	case watcher.OpCreate:
		if err := m.reloadLayer(layer); err != nil {
			log.Errorf("reload %s after create: %v", event.Path, err)
			return
		}
		m.notifier.NotifyCreate(layer.ID, layer.Name, layer.Path)

	case watcher.OpWrite:
		if err := m.reloadLayer(layer); err != nil {
			log.Errorf("reload %s: %v", event.Path, err)
		}
	}
}

// findLayer must be called with the lock held.
func (m *Manager) findLayer(name string) *Layer {
	for _, layer := range m.layers {
		if layer.Name == name {
			return layer
		}
	}
	return nil
}

// Manager resolves options against the merged configuration.
var _ option.Source = (*Manager)(nil)

// Display renders the option identity for diagnostics.
func (m *Manager) Display(id option.Id) string {
	return m.Merged().Display(id)
}

// GetString returns the effective string value, nil when absent.
func (m *Manager) GetString(id option.Id) (*string, error) {
	return m.Merged().GetString(id)
}

// GetBool returns the effective bool value, nil when absent.
func (m *Manager) GetBool(id option.Id) (*bool, error) {
	return m.Merged().GetBool(id)
}

// GetInt returns the effective int value, nil when absent.
func (m *Manager) GetInt(id option.Id) (*int64, error) {
	return m.Merged().GetInt(id)
}

// GetFloat returns the effective float value, nil when absent.
func (m *Manager) GetFloat(id option.Id) (*float64, error) {
	return m.Merged().GetFloat(id)
}

// GetStringList returns the effective list edits, nil when absent.
func (m *Manager) GetStringList(id option.Id) ([]option.ListEdit, error) {
	return m.Merged().GetStringList(id)
}

// GetStringDict returns the effective dict value, nil when absent.
func (m *Manager) GetStringDict(id option.Id) (*option.StringDict, error) {
	return m.Merged().GetStringDict(id)
}
