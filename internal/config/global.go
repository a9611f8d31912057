package config

import "sync"

// GlobalConfig holds the configuration for the running CLI invocation.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig

// InitGlobalConfig loads the configuration (see Load) and installs it globally.
func InitGlobalConfig(overlayPath string) (*Config, error) {
	cfg, err := Load(overlayPath)
	if err != nil {
		return nil, err
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
	return cfg, nil
}

// GetGlobalConfig returns the global configuration, falling back to defaults
// when InitGlobalConfig has not run.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := GlobalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if GlobalConfig == nil {
		GlobalConfig = New()
	}
	return GlobalConfig
}

// ResetGlobalConfigForTest clears the global config.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = nil
}
