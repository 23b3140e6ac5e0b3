package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/Zachkp/about-section/internal/about"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const sessionCookie = "about_session"

// sessions keeps one tab selector per visitor. Least recently used visitors
// are dropped once capacity is reached and their selectors are closed.
type sessions struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *about.Selector]
	catalog *about.Catalog
	log     *zap.Logger
}

func newSessions(capacity int, catalog *about.Catalog, log *zap.Logger) (*sessions, error) {
	s := &sessions{catalog: catalog, log: log}
	cache, err := lru.NewWithEvict(capacity, func(id string, sel *about.Selector) {
		log.Debug("Closing tab selector", zap.String("session", id))
		sel.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// mount gives the session a fresh selector at the initial tab, replacing
// any selector it had.
func (s *sessions) mount(id string, opts ...about.Option) *about.Selector {
	sel := about.NewSelector(s.catalog, opts...)

	s.mu.Lock()
	old, ok := s.cache.Peek(id)
	s.cache.Add(id, sel)
	s.mu.Unlock()

	if ok {
		old.Close()
	}
	return sel
}

// get returns the session's selector, mounting one if it has none.
func (s *sessions) get(id string, opts ...about.Option) *about.Selector {
	s.mu.Lock()
	if sel, ok := s.cache.Get(id); ok {
		s.mu.Unlock()
		return sel
	}
	sel := about.NewSelector(s.catalog, opts...)
	s.cache.Add(id, sel)
	s.mu.Unlock()
	return sel
}

func (s *sessions) Len() int {
	return s.cache.Len()
}

// Close closes every live selector.
func (s *sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}

// sessionID reads the visitor's session cookie, issuing a new id when the
// cookie is missing or malformed.
func sessionID(c *gin.Context) string {
	if v, err := c.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}
