// Package skillbar parses skillbar bot flags and launches the service.
package skillbar

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/skillbar/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/skillbar/internal/platform/grpc"
	"github.com/louisbranch/skillbar/internal/platform/timeouts"
	server "github.com/louisbranch/skillbar/internal/services/skillbar/app"
	"github.com/louisbranch/skillbar/internal/services/skillbar/presenter"
)

// Config holds skillbar command configuration.
type Config struct {
	Tokens      []string          `env:"SKILLBAR_DISCORD_TOKENS" envSeparator:","`
	Prefix      string            `env:"SKILLBAR_COMMAND_PREFIX" envDefault:"-"`
	HealthAddr  string            `env:"SKILLBAR_HEALTH_ADDR" envDefault:":8090"`
	DBPath      string            `env:"SKILLBAR_DB_PATH" envDefault:"data/skillbar.db"`
	AssetsDir   string            `env:"SKILLBAR_ASSETS_DIR" envDefault:"assets"`
	Locale      string            `env:"SKILLBAR_LOCALE" envDefault:"en-US"`
	TileSize    int               `env:"SKILLBAR_TILE_SIZE" envDefault:"64"`
	Markers     presenter.Markers `envPrefix:"SKILLBAR_EMOJI_"`
	HealthCheck bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	tokens := strings.Join(cfg.Tokens, ",")
	fs.StringVar(&tokens, "tokens", tokens, "Comma-separated Discord bot tokens")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Command prefix")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Skill database path")
	fs.StringVar(&cfg.AssetsDir, "assets-dir", cfg.AssetsDir, "Directory holding skills/<id>.jpg icons")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for replies")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Icon edge length in pixels")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Probe the running process health endpoint and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Tokens = splitTokens(tokens)
	if cfg.TileSize <= 0 {
		return Config{}, fmt.Errorf("tile size must be positive, got %d", cfg.TileSize)
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		return Config{}, fmt.Errorf("command prefix is required")
	}
	return cfg, nil
}

// Run starts the bots, or probes a running instance when HealthCheck is set.
func Run(ctx context.Context, cfg Config) error {
	if cfg.HealthCheck {
		return platformgrpc.Probe(ctx, cfg.HealthAddr, server.HealthService, timeouts.HealthProbe, nil)
	}
	if len(cfg.Tokens) == 0 {
		return fmt.Errorf("no discord tokens configured (set SKILLBAR_DISCORD_TOKENS or -tokens)")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSkillbar, func(ctx context.Context) error {
		log.Printf("starting %d bot account(s) with prefix %q", len(cfg.Tokens), cfg.Prefix)
		return server.Run(ctx, server.Config{
			Tokens:     cfg.Tokens,
			Prefix:     cfg.Prefix,
			HealthAddr: cfg.HealthAddr,
			DBPath:     cfg.DBPath,
			AssetsDir:  cfg.AssetsDir,
			Locale:     cfg.Locale,
			TileSize:   cfg.TileSize,
			Markers:    cfg.Markers,
		})
	})
}

func splitTokens(raw string) []string {
	var tokens []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
