// admin.go - privacy-conscious tab tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Zachkp/about-section/internal/about"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminCookie = "admin_token"

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// tracker records tab switches with salted, truncated IP hashes.
type tracker struct {
	store *Store
	salt  string
	log   *zap.Logger
	now   func() time.Time
	wg    sync.WaitGroup
}

func newTracker(store *Store, log *zap.Logger) (*tracker, error) {
	salt, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &tracker{store: store, salt: salt, log: log, now: time.Now}, nil
}

// hashIP is consistent per IP for the lifetime of the process.
func (t *tracker) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + t.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// observer returns a selector observer that records switches for the
// visitor behind c. Visitors sending DNT are not tracked.
func (t *tracker) observer(c *gin.Context) about.Observer {
	if t == nil || c.GetHeader("DNT") == "1" {
		return nil
	}
	hashed := t.hashIP(c.ClientIP())

	return func(from, to string) {
		if from == to {
			return
		}
		at := t.now()
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.store.RecordTabView(ctx, hashed, from, to, at); err != nil {
				t.log.Warn("Error recording tab view", zap.Error(err))
			}
		}()
	}
}

// Wait blocks until in-flight recordings finish.
func (t *tracker) Wait() {
	t.wg.Wait()
}

func (t *tracker) cleanup(ctx context.Context) {
	n, err := t.store.Cleanup(ctx, t.now())
	if err != nil {
		t.log.Warn("Error cleaning up old tab views", zap.Error(err))
		return
	}
	if n > 0 {
		t.log.Info("Privacy cleanup removed old tab views", zap.Int64("rows", n))
	}
}

type adminAuth struct {
	token    string
	username string
	password string
}

func newAdminAuth(cfg *Config, log *zap.Logger) (*adminAuth, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	a := &adminAuth{token: token, username: cfg.AdminUsername, password: cfg.AdminPassword}

	// Default credentials for development
	if a.username == "" {
		a.username = "admin"
		if cfg.GinMode == gin.DebugMode {
			log.Warn("Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if a.password == "" {
		a.password = "admin123"
		if cfg.GinMode == gin.DebugMode {
			log.Warn("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return a, nil
}

func (a *adminAuth) valid(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (app *application) setupAdminRoutes(r *gin.Engine) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":           "Privacy Policy",
			"retentionMonths": int(viewRetention / (30 * 24 * time.Hour)),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if app.admin.valid(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, app.admin.token, 3600*24, "/admin", "", false, true)
			app.log.Info("Admin login successful", zap.String("client", app.tracker.hashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		app.log.Warn("Failed admin login attempt", zap.String("client", app.tracker.hashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(app.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			app.log.Error("Error loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": app.sessions.Len(),
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Stats export for backups or analysis
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=tab-stats.json")
		app.log.Info("Admin stats exported", zap.String("client", app.tracker.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		app.tracker.cleanup(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})
}
