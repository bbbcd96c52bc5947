package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/render"
)

// Cache backend names accepted in [CacheConfig].
const (
	cacheBackendFile   = "file"
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"
	cacheBackendNone   = "none"
)

// Config holds the settings read from the TOML config file. Flags override
// individual values per command.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
	Demo   DemoConfig   `toml:"demo"`
}

// RenderConfig controls the render command and the cached render pipeline.
type RenderConfig struct {
	// Format is the default output format: svg, png, or dot.
	Format string `toml:"format"`
	// Jobs caps concurrent renders; 0 means one per CPU.
	Jobs int `toml:"jobs"`
	// CacheTTL is how long rendered artifacts stay cached, e.g. "24h".
	CacheTTL Duration `toml:"cache_ttl"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is one of file, memory, redis, or none.
	Backend string `toml:"backend"`
	// Dir overrides the file backend's directory (default ~/.cache/listviz).
	Dir string `toml:"dir"`
	// RedisAddr is the redis backend's host:port.
	RedisAddr string `toml:"redis_addr"`
	// Compression stores file entries zstd-compressed.
	Compression bool `toml:"compression"`
}

// ServeConfig controls the HTTP preview server.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// MaxBody caps uploaded graph bodies in bytes.
	MaxBody int64 `toml:"max_body"`
}

// DemoConfig controls the demo command.
type DemoConfig struct {
	// Value is the root of the generated call tree.
	Value int `toml:"value"`
}

// Duration wraps time.Duration so TOML values like "24h" decode directly.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for toml.Unmarshal.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the wrapped value.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Format:   "svg",
			CacheTTL: Duration(24 * time.Hour),
		},
		Cache: CacheConfig{
			Backend:     cacheBackendFile,
			RedisAddr:   "localhost:6379",
			Compression: true,
		},
		Serve: ServeConfig{
			Addr:    ":8080",
			MaxBody: 1 << 20,
		},
		Demo: DemoConfig{
			Value: 15,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// means the default location, where a missing file is not an error; an
// explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendMemory, cacheBackendRedis, cacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, memory, redis, or none)", c.Cache.Backend)
	}
	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		return err
	}
	if c.Serve.MaxBody <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_body must be positive, got %d", c.Serve.MaxBody)
	}
	return nil
}
