package config

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stratum/internal/config/store"
)

// Layer is one configuration source held by a Manager. File layers
// carry the path they were read from; in-memory layers have an empty
// Path and never reload.
type Layer struct {
	// ID uniquely identifies the layer for the lifetime of the manager.
	ID uuid.UUID

	// Name is the caller-chosen layer name, unique within a manager.
	Name string

	// Path is the absolute file path for file layers, empty otherwise.
	Path string

	// Store is the layer's current contents.
	Store store.Store

	// LoadedAt is when the store was last read from its source.
	LoadedAt time.Time
}

// IsFile reports whether the layer is backed by a file.
func (l *Layer) IsFile() bool {
	return l.Path != ""
}
