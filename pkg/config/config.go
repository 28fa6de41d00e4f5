// Package config loads the service configuration file.
//
// The file is TOML, YAML or JSON, chosen by extension:
//
//	[initializr]            # base catalog, see metadata.Properties
//	groupId = "com.acme"
//
//	[[initializr.bootVersions]]
//	id = "2.1.6.RELEASE"
//	default = true
//
//	[refresh]
//	feed_url = "https://releases.example.com/project.json"
//	interval = "10m"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// Zero values are replaced by [Config.WithDefaults].
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/metadata"
)

// Default values.
const (
	DefaultInterval        = 10 * time.Minute
	DefaultTimeout         = 10 * time.Second
	DefaultCacheTTL        = time.Hour
	DefaultBackend         = BackendFile
	DefaultAddr            = ":8080"
	DefaultMongoDatabase   = "initializr"
	DefaultMongoCollection = "cache"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the service configuration.
type Config struct {
	Initializr metadata.Properties `json:"initializr" toml:"initializr" yaml:"initializr"`
	Overrides  []string            `json:"overrides,omitempty" toml:"overrides" yaml:"overrides,omitempty"`
	Refresh    Refresh             `json:"refresh" toml:"refresh" yaml:"refresh"`
	Cache      Cache               `json:"cache" toml:"cache" yaml:"cache"`
	Server     Server              `json:"server" toml:"server" yaml:"server"`
}

// Refresh configures the version feed.
type Refresh struct {
	FeedURL  string   `json:"feed_url,omitempty" toml:"feed_url" yaml:"feed_url,omitempty"`
	FeedFile string   `json:"feed_file,omitempty" toml:"feed_file" yaml:"feed_file,omitempty"`
	Interval Duration `json:"interval,omitempty" toml:"interval" yaml:"interval,omitempty"`
	Timeout  Duration `json:"timeout,omitempty" toml:"timeout" yaml:"timeout,omitempty"`
	CacheTTL Duration `json:"cache_ttl,omitempty" toml:"cache_ttl" yaml:"cache_ttl,omitempty"`
}

// Enabled reports whether a feed is configured.
func (r Refresh) Enabled() bool {
	return r.FeedURL != "" || r.FeedFile != ""
}

// Cache configures the feed cache backend.
type Cache struct {
	Backend         string `json:"backend,omitempty" toml:"backend" yaml:"backend,omitempty"`
	Dir             string `json:"dir,omitempty" toml:"dir" yaml:"dir,omitempty"`
	RedisAddr       string `json:"redis_addr,omitempty" toml:"redis_addr" yaml:"redis_addr,omitempty"`
	MongoURI        string `json:"mongo_uri,omitempty" toml:"mongo_uri" yaml:"mongo_uri,omitempty"`
	MongoDatabase   string `json:"mongo_database,omitempty" toml:"mongo_database" yaml:"mongo_database,omitempty"`
	MongoCollection string `json:"mongo_collection,omitempty" toml:"mongo_collection" yaml:"mongo_collection,omitempty"`
	KeyPrefix       string `json:"key_prefix,omitempty" toml:"key_prefix" yaml:"key_prefix,omitempty"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `json:"addr,omitempty" toml:"addr" yaml:"addr,omitempty"`
}

// Duration is a time.Duration written as a string ("10m", "1h30m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML and
// YAML decoders.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Load reads the configuration file at path and applies the defaults.
// Relative overrides, feed_file and cache dir are resolved against the
// directory of path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "cannot open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f, formatOf(path), path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i := range cfg.Overrides {
		resolve(base, &cfg.Overrides[i])
	}
	resolve(base, &cfg.Refresh.FeedFile)
	resolve(base, &cfg.Cache.Dir)
	return cfg, nil
}

func resolve(base string, path *string) {
	if *path != "" && !filepath.IsAbs(*path) {
		*path = filepath.Join(base, *path)
	}
}

// Decode reads a configuration in the given format ("toml", "yaml" or
// "json") and applies the defaults. Name identifies the source in errors.
func Decode(r io.Reader, format, name string) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case "toml":
		_, err = toml.NewDecoder(r).Decode(&cfg)
	case "yaml":
		err = yaml.NewDecoder(r).Decode(&cfg)
		if err == io.EOF {
			err = nil
		}
	case "json":
		err = json.NewDecoder(r).Decode(&cfg)
	default:
		return nil, errors.New(errors.ErrCodeConfigParse, "unsupported config format %q for %s", format, name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "cannot parse config %s", name)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults fills zero values with defaults and returns c.
func (c *Config) WithDefaults() *Config {
	if c.Refresh.Interval.Duration == 0 {
		c.Refresh.Interval.Duration = DefaultInterval
	}
	if c.Refresh.Timeout.Duration == 0 {
		c.Refresh.Timeout.Duration = DefaultTimeout
	}
	if c.Refresh.CacheTTL.Duration == 0 {
		c.Refresh.CacheTTL.Duration = DefaultCacheTTL
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultBackend
	}
	if c.Cache.MongoDatabase == "" {
		c.Cache.MongoDatabase = DefaultMongoDatabase
	}
	if c.Cache.MongoCollection == "" {
		c.Cache.MongoCollection = DefaultMongoCollection
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	return c
}

func (c *Config) validate() error {
	if c.Refresh.FeedURL != "" && c.Refresh.FeedFile != "" {
		return errors.New(errors.ErrCodeConfigInvalid, "refresh: feed_url and feed_file are mutually exclusive")
	}
	if c.Refresh.FeedURL != "" {
		if err := errors.ValidateURL(c.Refresh.FeedURL); err != nil {
			return errors.Wrap(errors.ErrCodeConfigInvalid, err, "refresh: invalid feed_url")
		}
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "cache: redis backend needs redis_addr")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "cache: mongo backend needs mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeConfigInvalid, "cache: unknown backend %q", c.Cache.Backend)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
