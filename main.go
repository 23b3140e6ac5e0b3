package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zachkp/about-section/internal/about"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templatesFS embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	app, err := newApplication(cfg, log, about.Default(), store)
	if err != nil {
		return err
	}
	defer app.close()

	// Clean up old tab views for privacy compliance
	go app.tracker.cleanup(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newApplication(cfg *Config, log *zap.Logger, catalog *about.Catalog, store *Store) (*application, error) {
	sess, err := newSessions(cfg.SessionCapacity, catalog, log)
	if err != nil {
		return nil, err
	}
	tr, err := newTracker(store, log)
	if err != nil {
		return nil, err
	}
	admin, err := newAdminAuth(cfg, log)
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:      cfg,
		log:      log,
		catalog:  catalog,
		sessions: sess,
		store:    store,
		tracker:  tr,
		admin:    admin,
	}, nil
}

func (app *application) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(app.log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	app.setupAboutRoutes(r)
	app.setupAdminRoutes(r)
	return r
}

// close stops every selector and waits for pending tab-view writes.
func (app *application) close() {
	app.sessions.Close()
	app.tracker.Wait()
}
