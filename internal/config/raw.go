package config

// RawConfig mirrors Config with pointer fields so that keys absent from the
// file can be told apart from zero values.
type RawConfig struct {
	Backend      *string           `yaml:"backend"`
	Pointer      *bool             `yaml:"pointer"`
	Demo         *string           `yaml:"demo"`
	LogLevel     *string           `yaml:"log_level"`
	StatusSocket *bool             `yaml:"status_socket"`
	Env          map[string]string `yaml:"env"`
}

// BuildEffectiveConfig applies raw file values over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()
	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.Pointer != nil {
		cfg.Pointer = *raw.Pointer
	}
	if raw.Demo != nil {
		cfg.Demo = *raw.Demo
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.StatusSocket != nil {
		cfg.StatusSocket = *raw.StatusSocket
	}
	for k, v := range raw.Env {
		cfg.Env[k] = v
	}
	return cfg
}
