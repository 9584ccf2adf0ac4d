package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-barry/blog/core"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const DefaultConfigPath = "blog.config.yml"

type RuntimeConfig struct {
	Env        string
	ConfigPath string
	// Addr overrides the address from the config file when set.
	Addr string
}

type Server struct {
	cfg      core.Config
	env      string
	pages    *core.Router
	handler  http.Handler
	reloader core.Reloader
}

// Pages is the page route table. The index body comes from cfg.IndexMarkdown
// when it is set; an unreadable file is a construction error.
func Pages(cfg core.Config) ([]core.PageRoute, error) {
	view := core.Index
	if cfg.IndexMarkdown != "" {
		src, err := os.ReadFile(cfg.IndexMarkdown)
		if err != nil {
			return nil, &core.ConstructionError{Component: "index markdown", Err: err}
		}
		view = core.MarkdownView(string(src))
	}
	return []core.PageRoute{
		{Path: "/", Title: cfg.Title, View: view},
	}, nil
}

// NewServer assembles the page group and the asset group into one handler
// behind the recover and tracing layers. A nil tp disables span export.
func NewServer(cfg core.Config, env string, tp trace.TracerProvider) (*Server, error) {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	renderer, err := core.NewPageRenderer(core.WithStylesheet(cfg.Stylesheet))
	if err != nil {
		return nil, err
	}
	pages, err := Pages(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, env: env}
	ctx := core.RuntimeContext{Env: env, DebugHeaders: cfg.DebugHeaders}

	mux := http.NewServeMux()
	if env == "dev" {
		s.reloader = core.NewReloadHub()
		mux.Handle("GET "+core.ReloadPath, s.reloader)
		ctx.BodySuffix = core.ReloadScript
	}

	s.pages = core.NewRouter(renderer, ctx, pages...)
	assets := core.NewAssetHandler(cfg.AssetsDir, env)

	mux.Handle("GET /assets/", http.StripPrefix("/assets", assets))
	mux.Handle("GET /", s.pages)

	s.handler = core.Chain(mux, core.Trace(tp), core.Recover())
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Pages() *core.Router {
	return s.pages
}

var listenAndServe = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.reloader != nil {
		watcher := core.NewWatcher(s.cfg.AssetsDir, s.reloader.Reload)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.WithError(err).Warn("asset watcher stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": s.cfg.Addr, "env": s.env}).Info("blog listening")
		errCh <- listenAndServe(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

var Start = func(rc RuntimeConfig) error {
	if rc.ConfigPath == "" {
		rc.ConfigPath = DefaultConfigPath
	}

	cfg, err := core.LoadConfig(rc.ConfigPath)
	if err != nil {
		return err
	}
	if rc.Addr != "" {
		cfg.Addr = rc.Addr
	}

	closeLog, err := core.InitLogger(cfg.DebugLogs || rc.Env == "dev", cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := core.InitTracer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("tracer shutdown")
		}
	}()

	srv, err := NewServer(cfg, rc.Env, tp)
	if err != nil {
		return fmt.Errorf("start %s: %w", rc.Env, err)
	}
	return srv.Run(ctx)
}
