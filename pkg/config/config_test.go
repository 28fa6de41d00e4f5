package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/initializr/pkg/errors"
)

const tomlConfig = `
overrides = ["extra.json"]

[initializr]
groupId = "com.acme"

[[initializr.bootVersions]]
id = "2.1.6.RELEASE"
default = true

[[initializr.dependencies]]
name = "Web"

[[initializr.dependencies.content]]
id = "web"
groupId = "org.acme.boot"
artifactId = "starter-web"

[refresh]
feed_url = "https://releases.example.com/project.json"
interval = "5m"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
`

const yamlConfig = `
initializr:
  groupId: com.acme
  bootVersions:
    - id: 2.1.6.RELEASE
      default: true
refresh:
  feed_file: releases.json
  cache_ttl: 30m
server:
  addr: ":9090"
`

const jsonConfig = `{
  "initializr": {"groupId": "com.acme", "bootVersions": [{"id": "2.1.6.RELEASE", "default": true}]},
  "refresh": {"timeout": "3s"},
  "cache": {"backend": "none"}
}`

func TestLoad(t *testing.T) {
	tests := []struct {
		file    string
		content string
		check   func(t *testing.T, c *Config)
	}{
		{"initializr.toml", tomlConfig, func(t *testing.T, c *Config) {
			if c.Refresh.Interval.Duration != 5*time.Minute {
				t.Errorf("interval = %v", c.Refresh.Interval)
			}
			if c.Cache.Backend != BackendRedis || c.Cache.RedisAddr != "localhost:6379" {
				t.Errorf("cache = %+v", c.Cache)
			}
			if len(c.Initializr.Dependencies) != 1 || c.Initializr.Dependencies[0].Content[0].ID != "web" {
				t.Errorf("dependencies = %+v", c.Initializr.Dependencies)
			}
			if len(c.Overrides) != 1 || !filepath.IsAbs(c.Overrides[0]) {
				t.Errorf("overrides should be resolved against the config dir: %v", c.Overrides)
			}
		}},
		{"initializr.yaml", yamlConfig, func(t *testing.T, c *Config) {
			if filepath.Base(c.Refresh.FeedFile) != "releases.json" || !filepath.IsAbs(c.Refresh.FeedFile) {
				t.Errorf("feed_file should be resolved against the config dir: %q", c.Refresh.FeedFile)
			}
			if c.Refresh.CacheTTL.Duration != 30*time.Minute {
				t.Errorf("refresh = %+v", c.Refresh)
			}
			if c.Server.Addr != ":9090" {
				t.Errorf("addr = %q", c.Server.Addr)
			}
		}},
		{"initializr.json", jsonConfig, func(t *testing.T, c *Config) {
			if c.Refresh.Timeout.Duration != 3*time.Second {
				t.Errorf("timeout = %v", c.Refresh.Timeout)
			}
			if c.Cache.Backend != BackendNone {
				t.Errorf("backend = %q", c.Cache.Backend)
			}
			if c.Refresh.Enabled() {
				t.Error("no feed configured")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			c, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if c.Initializr.GroupID != "com.acme" {
				t.Errorf("groupId = %q", c.Initializr.GroupID)
			}
			if len(c.Initializr.PlatformVersions) != 1 || !c.Initializr.PlatformVersions[0].Default {
				t.Errorf("bootVersions = %+v", c.Initializr.PlatformVersions)
			}
			tt.check(t, c)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	c := (&Config{}).WithDefaults()
	if c.Refresh.Interval.Duration != DefaultInterval ||
		c.Refresh.Timeout.Duration != DefaultTimeout ||
		c.Refresh.CacheTTL.Duration != DefaultCacheTTL {
		t.Errorf("refresh defaults = %+v", c.Refresh)
	}
	if c.Cache.Backend != BackendFile || c.Server.Addr != ":8080" {
		t.Errorf("cache=%q addr=%q", c.Cache.Backend, c.Server.Addr)
	}
	if c.Cache.MongoDatabase != "initializr" || c.Cache.MongoCollection != "cache" {
		t.Errorf("mongo defaults = %+v", c.Cache)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		content string
		code    errors.Code
	}{
		{"syntax", "toml", "[refresh\n", errors.ErrCodeConfigParse},
		{"bad duration", "json", `{"refresh": {"interval": "soon"}}`, errors.ErrCodeConfigParse},
		{"unknown format", "ini", "", errors.ErrCodeConfigParse},
		{"two feeds", "json", `{"refresh": {"feed_url": "https://a", "feed_file": "b"}}`, errors.ErrCodeConfigInvalid},
		{"feed scheme", "json", `{"refresh": {"feed_url": "ftp://a"}}`, errors.ErrCodeConfigInvalid},
		{"redis without addr", "json", `{"cache": {"backend": "redis"}}`, errors.ErrCodeConfigInvalid},
		{"mongo without uri", "json", `{"cache": {"backend": "mongo"}}`, errors.ErrCodeConfigInvalid},
		{"unknown backend", "json", `{"cache": {"backend": "memcached"}}`, errors.ErrCodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.content), tt.format, tt.name)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.IsConfiguration(err) {
		t.Errorf("Load() error = %v, want a configuration error", err)
	}
}
