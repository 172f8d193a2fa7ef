// Config loading for the marketplace CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/marketplace/internal/paths"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// envPrefix turns data_dir into MARKETPLACE_DATA_DIR and so on.
	envPrefix = "MARKETPLACE"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyBusyTimeout    = "busy_timeout_ms"
	cfgKeyPasswordScheme = "password_scheme"
	cfgKeyLogLevel       = "log_level"

	defaultLogLevel = "warn"
)

// configFile is the structure written to config.yaml on first run.
type configFile struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"data_dir,omitempty"`
	BusyTimeoutMS  int    `yaml:"busy_timeout_ms"`
	PasswordScheme string `yaml:"password_scheme"`
	LogLevel       string `yaml:"log_level"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:        types.BackendSQLite,
		BusyTimeoutMS:  types.DefaultBusyTimeoutMS,
		PasswordScheme: types.PasswordPlain,
		LogLevel:       defaultLogLevel,
	}
}

// loadConfig reads config.yaml from configDir using Viper, with
// MARKETPLACE_* environment variables taking precedence over the file. It
// creates the directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if _, err := writeConfigIfMissing(paths.ConfigFile(configDir)); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	defaults := defaultConfigFile()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeyBusyTimeout, defaults.BusyTimeoutMS)
	v.SetDefault(cfgKeyPasswordScheme, defaults.PasswordScheme)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Marketplace configuration. MARKETPLACE_* environment variables override these keys.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// backendConfig builds the Attach configuration from flags and config.
func (a *app) backendConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend:        a.cfg.GetString(cfgKeyBackend),
		DataDir:        dataDir,
		BusyTimeoutMS:  a.cfg.GetInt(cfgKeyBusyTimeout),
		PasswordScheme: a.cfg.GetString(cfgKeyPasswordScheme),
	}, nil
}
