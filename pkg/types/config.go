package types

import (
	"errors"
	"regexp"
)

// Config holds backend selection and parameters for Datastore.Attach.
type Config struct {
	Backend      string   `json:"backend" yaml:"backend"`
	DataDir      string   `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string   `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
	Tables       []string `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies control when JSONL files are rewritten. Immediate persists
// after every write; OnClose defers all writes until Detach.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
	ErrTableNameInvalid    = errors.New("invalid table name")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// tableNamePattern keeps table names safe to use as file names.
var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownSyncStrategies[c.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	for _, name := range c.Tables {
		if !tableNamePattern.MatchString(name) {
			return ErrTableNameInvalid
		}
	}
	return nil
}

// TableNames returns the configured tables, or StandardTableNames when none
// are listed.
func (c Config) TableNames() []string {
	if len(c.Tables) == 0 {
		return StandardTableNames
	}
	return c.Tables
}

// EffectiveSyncStrategy returns the sync strategy, defaulting to immediate.
func (c Config) EffectiveSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}
