package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/frontdesk/internal/paths"
	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Config keys of config.yaml.
const (
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyHotelID      = "hotel_id"
	cfgKeyPageSize     = "page_size"
	cfgKeyRollback     = "rollback"
	cfgKeyStrict       = "strict"
	cfgKeyLogLevel     = "log_level"
	cfgKeySyncStrategy = "sync_strategy"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	HotelID      string `yaml:"hotel_id,omitempty"`
	PageSize     int    `yaml:"page_size"`
	Rollback     string `yaml:"rollback"`
	Strict       bool   `yaml:"strict"`
	LogLevel     string `yaml:"log_level"`
	SyncStrategy string `yaml:"sync_strategy"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:      types.BackendSQLite,
		PageSize:     crud.DefaultPageSize,
		Rollback:     string(crud.RollbackNone),
		LogLevel:     "warn",
		SyncStrategy: types.SyncImmediate,
	}
}

// settings is the resolved configuration of one invocation.
type settings struct {
	dirs         paths.Dirs
	backend      string
	hotelID      string
	pageSize     int
	rollback     crud.RollbackPolicy
	strict       bool
	logLevel     slog.Level
	syncStrategy string
}

// loadSettings resolves directories and reads config.yaml with viper. A
// missing config.yaml leaves the defaults in place. Flags override the file.
func loadSettings() (settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	def := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyPageSize, def.PageSize)
	v.SetDefault(cfgKeyRollback, def.Rollback)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeySyncStrategy, def.SyncStrategy)
	v.SetConfigFile(filepath.Join(configDir, paths.ConfigFileName))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return settings{}, fmt.Errorf("read config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}
	rollback, err := crud.ParseRollbackPolicy(v.GetString(cfgKeyRollback))
	if err != nil {
		return settings{}, fmt.Errorf("config %s: %w", cfgKeyRollback, err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("config %s: %w", cfgKeyLogLevel, err)
	}

	s := settings{
		dirs:         paths.Dirs{Config: configDir, Data: dataDir},
		backend:      v.GetString(cfgKeyBackend),
		hotelID:      v.GetString(cfgKeyHotelID),
		pageSize:     v.GetInt(cfgKeyPageSize),
		rollback:     rollback,
		strict:       v.GetBool(cfgKeyStrict),
		logLevel:     level,
		syncStrategy: strings.ToLower(v.GetString(cfgKeySyncStrategy)),
	}
	if flags.hotel != "" {
		s.hotelID = flags.hotel
	}
	return s, nil
}

// isNotExist reports whether viper failed only because the file is absent.
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// datastoreConfig returns the backend configuration of s.
func (s settings) datastoreConfig() types.Config {
	return types.Config{
		Backend:      s.backend,
		DataDir:      s.dirs.Data,
		SyncStrategy: s.syncStrategy,
	}
}

// writeConfigIfMissing creates config.yaml with default values unless it
// already exists.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
