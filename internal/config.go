/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreDisk   StoreKind = "disk"
	StoreS3     StoreKind = "s3"
	StoreMemory StoreKind = "memory"
)

// Config is the process configuration shared by the CLI and the bot. It
// is read from the environment, optionally seeded from a .env file.
type Config struct {
	Store        StoreKind
	Dir          string
	Bucket       string
	Gzip         bool
	HistoryLimit int
	ListenAddr   string

	DiscordToken     string
	DiscordAppID     string
	DiscordPublicKey string
	DiscordCmdID     string
}

// LoadConfig reads the configuration. Any .env files named are loaded
// first; a missing file is not an error. Variables already present in the
// environment take precedence over .env contents.
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to load %v: %w", f, err)
		}
	}
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Store:            StoreKind(strings.ToLower(getenv("PPTD_STORE", string(StoreDisk)))),
		Dir:              os.Getenv("PPTD_DIR"),
		Bucket:           os.Getenv("PPTD_BUCKET"),
		ListenAddr:       getenv("PPTD_LISTEN", DefaultListenAddr),
		HistoryLimit:     DefaultHistoryLimit,
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:     os.Getenv("DISCORD_APP_ID"),
		DiscordPublicKey: os.Getenv("DISCORD_PUBLIC_KEY"),
		DiscordCmdID:     os.Getenv("DISCORD_CMD_ID"),
	}

	if v := os.Getenv("PPTD_HISTORY_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("invalid PPTD_HISTORY_LIMIT %q", v)
		}
		cfg.HistoryLimit = limit
	}
	if v := os.Getenv("PPTD_GZIP"); v != "" {
		gz, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PPTD_GZIP %q: %w", v, err)
		}
		cfg.Gzip = gz
	}

	switch cfg.Store {
	case StoreDisk:
		if cfg.Dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("unable to determine home directory: %w", err)
			}
			cfg.Dir = filepath.Join(home, DefaultStoreDir)
		}
	case StoreS3:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("PPTD_BUCKET must be set when PPTD_STORE=s3")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown PPTD_STORE %q (want disk, s3 or memory)",
			cfg.Store)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
