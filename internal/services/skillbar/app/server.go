// Package server wires the skillbar runtime: skill catalog, pager, Discord
// bots and the gRPC health endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/skillbar/internal/platform/timeouts"
	"github.com/louisbranch/skillbar/internal/services/skillbar/discord"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
	"github.com/louisbranch/skillbar/internal/services/skillbar/icons"
	"github.com/louisbranch/skillbar/internal/services/skillbar/pager"
	"github.com/louisbranch/skillbar/internal/services/skillbar/presenter"
	skillsqlite "github.com/louisbranch/skillbar/internal/services/skillbar/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the health service name reported once every bot is online.
const HealthService = "skillbar"

// Config holds runtime settings for the skillbar server.
type Config struct {
	Tokens     []string
	Prefix     string
	HealthAddr string
	DBPath     string
	AssetsDir  string
	Locale     string
	TileSize   int
	Markers    presenter.Markers
}

type chatBot interface {
	Open(ctx context.Context) error
	Close() error
}

var newBot = func(cfg discord.Config) (chatBot, error) {
	return discord.New(cfg)
}

// Server hosts the bots and the health endpoint.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *skillsqlite.Store
	bots       []chatBot
	catalog    *skill.Catalog
}

// New opens storage, loads the skill catalog and prepares one bot per token.
// Bots connect in Serve.
func New(ctx context.Context, cfg Config) (*Server, error) {
	tokens := nonEmpty(cfg.Tokens)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("at least one discord token is required")
	}

	store, err := openSkillStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	records, err := store.ListSkills(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load skill catalog: %w", err)
	}
	catalog := skill.NewCatalog(records)
	if catalog.Len() == 0 {
		log.Printf("skill catalog at %s is empty; run catalog-importer to populate it", cfg.DBPath)
	} else {
		log.Printf("loaded %d skills", catalog.Len())
	}

	p, err := pager.New(pager.Config{
		Presenter: presenter.New(catalog, cfg.Markers),
		Icons:     icons.NewDir(cfg.AssetsDir),
		TileSize:  cfg.TileSize,
		Locale:    cfg.Locale,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create pager: %w", err)
	}

	bots := make([]chatBot, 0, len(tokens))
	for i, token := range tokens {
		bot, err := newBot(discord.Config{Token: token, Prefix: cfg.Prefix, Locale: cfg.Locale, Handler: p})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("create bot %d: %w", i+1, err)
		}
		bots = append(bots, bot)
	}

	addr := cfg.HealthAddr
	if strings.TrimSpace(addr) == "" {
		addr = ":8090"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		bots:       bots,
		catalog:    catalog,
	}, nil
}

// Addr returns the health listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SkillCount reports how many skills were loaded into the catalog.
func (s *Server) SkillCount() int {
	if s == nil {
		return 0
	}
	return s.catalog.Len()
}

// Run creates and serves a skillbar server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve connects every bot, reports SERVING and blocks until ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	serveErr := make(chan error, 1)
	log.Printf("skillbar health listening at %v", s.listener.Addr())
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	for i, bot := range s.bots {
		if err := bot.Open(ctx); err != nil {
			s.grpcServer.Stop()
			<-serveErr
			return fmt.Errorf("open bot %d: %w", i+1, err)
		}
	}
	log.Printf("%d bot account(s) online", len(s.bots))
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_SERVING)

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(timeouts.Shutdown):
			s.grpcServer.Stop()
		}
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close disconnects bots and releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	for i, bot := range s.bots {
		if err := bot.Close(); err != nil {
			log.Printf("close bot %d: %v", i+1, err)
		}
	}
	s.bots = nil
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close skill store: %v", err)
		}
		s.store = nil
	}
}

func openSkillStore(path string) (*skillsqlite.Store, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join("data", "skillbar.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := skillsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skill sqlite store: %w", err)
	}
	return store, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
