package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Zachkp/about-section/internal/about"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// settleTimeout bounds how long a request waits for its tab switch to land.
const settleTimeout = 2 * time.Second

type application struct {
	cfg      *Config
	log      *zap.Logger
	catalog  *about.Catalog
	sessions *sessions
	store    *Store
	tracker  *tracker
	admin    *adminAuth
}

type tabButton struct {
	ID     string
	Title  string
	Active bool
}

type panelView struct {
	Tabs    []tabButton
	Entry   about.Entry
	Missing string
}

func (app *application) panel(entry about.Entry) panelView {
	v := panelView{Entry: entry}
	for _, e := range app.catalog.Entries() {
		v.Tabs = append(v.Tabs, tabButton{ID: e.ID, Title: e.Title, Active: e.ID == entry.ID})
	}
	return v
}

func (app *application) setupAboutRoutes(r *gin.Engine) {
	r.Static("/images", app.cfg.AssetsDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Full page load remounts the panel at its initial tab.
	r.GET("/", func(c *gin.Context) {
		sel := app.sessions.mount(sessionID(c), about.WithObserver(app.tracker.observer(c)))

		entry, err := app.settle(c, sel)
		if err != nil {
			app.respondError(c, err)
			return
		}

		c.HTML(http.StatusOK, "index.html", gin.H{
			"intro":       AboutIntro,
			"imagePath":   aboutImagePath,
			"imageWidth":  aboutImageSize,
			"imageHeight": aboutImageSize,
			"panel":       app.panel(entry),
		})
	})

	r.GET("/about/tab", func(c *gin.Context) {
		sel := app.sessions.get(sessionID(c), about.WithObserver(app.tracker.observer(c)))

		entry, err := app.settle(c, sel)
		if err != nil {
			app.respondError(c, err)
			return
		}
		c.HTML(http.StatusOK, "about-panel.html", app.panel(entry))
	})

	// Unknown ids answer 200 with a placeholder so HTMX still swaps the panel.
	r.POST("/about/tab/:id", func(c *gin.Context) {
		id := c.Param("id")
		sid := sessionID(c)
		observer := about.WithObserver(app.tracker.observer(c))

		entry, err := app.selectTab(c, sid, id, observer)
		if errors.Is(err, about.ErrUnknownTab) {
			app.log.Debug("Rejected unknown tab", zap.String("tab", id))
			entry, err = app.settle(c, app.sessions.get(sid, observer))
			if err != nil {
				app.respondError(c, err)
				return
			}
			v := app.panel(entry)
			v.Missing = id
			c.HTML(http.StatusOK, "about-panel.html", v)
			return
		}
		if err != nil {
			app.respondError(c, err)
			return
		}
		c.HTML(http.StatusOK, "about-panel.html", app.panel(entry))
	})

	r.GET("/about/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"initial": app.catalog.Initial(),
			"entries": app.catalog.Entries(),
		})
	})
}

// selectTab applies id to the session's selector and waits for it to land.
// A selector closed underneath the request (reload or eviction) no longer
// accepts requests, so the session is looked up again and the request is
// sent to its replacement.
func (app *application) selectTab(c *gin.Context, sid, id string, opts ...about.Option) (about.Entry, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), settleTimeout)
	defer cancel()

	for {
		sel := app.sessions.get(sid, opts...)
		err := sel.RequestSelect(ctx, id)
		if errors.Is(err, about.ErrSelectorClosed) {
			if ctx.Err() != nil {
				return about.Entry{}, ctx.Err()
			}
			continue
		}
		if err != nil {
			return about.Entry{}, err
		}
		return sel.Settle(ctx)
	}
}

func (app *application) settle(c *gin.Context, sel *about.Selector) (about.Entry, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), settleTimeout)
	defer cancel()
	return sel.Settle(ctx)
}

func (app *application) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, about.ErrSelectorClosed):
		status = http.StatusServiceUnavailable
	}

	app.log.Warn("About panel request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	c.String(status, http.StatusText(status))
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
