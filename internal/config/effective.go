package config

import "math"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Settings is the resolved startup configuration. Every value is fixed
// before any backend is created and never changes afterwards.
type Settings struct {
	Backend        string `yaml:"backend" json:"backend"`
	PointerEnabled bool   `yaml:"pointer" json:"pointer"`
	PointerDevice  string `yaml:"pointer_device" json:"pointer_device"`
	FbdevDevice    string `yaml:"fbdev_device" json:"fbdev_device"`
	DRMCard        string `yaml:"drm_card" json:"drm_card"`
	Width          int    `yaml:"width" json:"width"`
	Height         int    `yaml:"height" json:"height"`
	Demo           string `yaml:"demo" json:"demo"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
	StatusSocket   bool   `yaml:"status_socket" json:"status_socket"`
}

// Resolve looks up each variable once. Precedence per value: the real
// environment, then the config file env: map, then the fixed default.
//
// A variable set to the empty string counts as set. Width and height use
// Atoi, so a non-numeric value resolves to 0 rather than the default.
func Resolve(cfg *Config, lookup LookupFunc) Settings {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	get := func(key, dflt string) string {
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v
			}
		}
		if v, ok := cfg.Env[key]; ok {
			return v
		}
		return dflt
	}

	return Settings{
		Backend:        get(EnvBackend, cfg.Backend),
		PointerEnabled: cfg.Pointer,
		PointerDevice:  get(EnvPointerDevice, DefaultPointerDevice),
		FbdevDevice:    get(EnvFbdevDevice, DefaultFbdevDevice),
		DRMCard:        get(EnvDRMCard, DefaultDRMCard),
		Width:          Atoi(get(EnvVideoWidth, DefaultVideoWidth)),
		Height:         Atoi(get(EnvVideoHeight, DefaultVideoHeight)),
		Demo:           cfg.Demo,
		LogLevel:       cfg.LogLevel,
		StatusSocket:   cfg.StatusSocket,
	}
}

// Atoi parses like C atoi: leading whitespace is skipped, an optional sign
// is accepted and the longest run of digits is converted. Anything else
// yields 0. Results saturate at the int32 range.
func Atoi(s string) int {
	i := 0
	for i < len(s) && isCSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32+1 {
			n = math.MaxInt32 + 1
		}
	}
	if neg {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n)
}

func isCSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
