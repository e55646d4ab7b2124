// Package config provides the layered configuration system for Stratum.
//
// The config package manages loading layer files, merging them with
// per-option precedence, resolving typed option values, and reloading
// layers when their files change on disk.
//
// # Architecture
//
// Configuration is organized in layers. Layers are merged in the order
// they were added, with later layers overriding earlier ones per
// option:
//
//	┌─────────────────────────────┐
//	│  3. Workspace overrides     │  ← Highest precedence
//	├─────────────────────────────┤
//	│  2. User settings           │  ← ~/.config/stratum/stratum.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest precedence
//	└─────────────────────────────┘
//
// Within a layer, options live under named scopes: a layer file is a
// table of scope tables. An option's value is always replaced whole by
// a higher layer, never deep-merged.
//
// # Sub-packages
//
//   - value: the generic value tree (scalars, arrays, ordered tables)
//   - option: option identities, list edits, and the typed accessor
//     protocol
//   - loader: layer file parsing (TOML, JSON, YAML)
//   - store: the layer store with shape validation, merging, and typed
//     lookups
//   - watcher: file watching for live reload
//   - notify: layer change notification
//
// # Basic Usage
//
// Build a manager from layer files and resolve options against the
// merged result:
//
//	mgr := config.NewManager()
//	if _, err := mgr.AddFile("user", userPath); err != nil {
//	    return err
//	}
//	if _, err := mgr.AddFile("workspace", wsPath); err != nil {
//	    return err
//	}
//
//	port, err := mgr.GetInt(option.NewId("server", "port"))
//	if err != nil {
//	    return err
//	}
//	if port == nil {
//	    // option absent in every layer
//	}
//
// # Configuration Files
//
// TOML is the primary format; JSON and YAML layers are chosen by file
// extension:
//
//	# ~/.config/stratum/stratum.toml
//	[server]
//	port = 8080
//	plugins = { add = ["metrics"] }
//
//	[client]
//	retries = 3
//
// # Error Handling
//
// Failures are reported as error values, never panics:
//
//   - loader.ReadError: a layer file could not be read
//   - loader.ParseError: a layer file could not be parsed
//   - store.ShapeError: a layer is not scope tables of option tables
//   - store.TypeMismatchError: an option's value has the wrong shape
//     for the accessor that was called
//   - store.ListSyntaxError: a string-shaped list option failed to
//     parse
package config
