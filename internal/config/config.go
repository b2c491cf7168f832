package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

// Config holds the server configuration.
type Config struct {
	Addr   string // Address to listen on; empty means an automatic port on localhost.
	WebDir string // Directory with the static assets and the compiled app.wasm.
}

const (
	EnvAddr   = "GOMEMORY_ADDR"
	EnvWebDir = "GOMEMORY_WEB_DIR"

	DefaultWebDir = "web"
)

// Load reads the configuration from the environment, after loading the given
// .env files (or ".env" if none is given). Missing .env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				klog.V(1).Infof("config: no %s file, using the environment only", f)
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Addr:   os.Getenv(EnvAddr),
		WebDir: getEnv(EnvWebDir, DefaultWebDir),
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
