// Package about holds the About section's tab content and the per-visitor
// tab selection state machine.
package about

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTab   = errors.New("unknown tab")
	ErrEmptyCatalog = errors.New("catalog has no entries")
	ErrEmptyID      = errors.New("catalog entry has empty id")
	ErrDuplicateID  = errors.New("duplicate catalog entry id")
)

// ContentKind tags how an entry's content should be presented.
type ContentKind int

const (
	KindBulletList ContentKind = iota
	KindRichText
)

func (k ContentKind) String() string {
	switch k {
	case KindBulletList:
		return "bullet_list"
	case KindRichText:
		return "rich_text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k ContentKind) MarshalText() ([]byte, error) {
	switch k {
	case KindBulletList, KindRichText:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown content kind %d", int(k))
	}
}

func (k *ContentKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bullet_list":
		*k = KindBulletList
	case "rich_text":
		*k = KindRichText
	default:
		return fmt.Errorf("unknown content kind %q", text)
	}
	return nil
}

// Content is plain data; rendering is left to the templates.
type Content struct {
	Kind  ContentKind `json:"kind"`
	Items []string    `json:"items,omitempty"`
	Text  string      `json:"text,omitempty"`
}

func Bullets(items ...string) Content {
	return Content{Kind: KindBulletList, Items: items}
}

func RichText(text string) Content {
	return Content{Kind: KindRichText, Text: text}
}

func (c Content) IsBulletList() bool { return c.Kind == KindBulletList }

func (c Content) clone() Content {
	out := c
	if c.Items != nil {
		out.Items = append([]string(nil), c.Items...)
	}
	return out
}

type Entry struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content Content `json:"content"`
}

func (e Entry) clone() Entry {
	e.Content = e.Content.clone()
	return e
}

// Catalog is an ordered, immutable table of tab entries.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

func NewCatalog(entries ...Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		}
		if _, ok := c.index[e.ID]; ok {
			return nil, fmt.Errorf("%q: %w", e.ID, ErrDuplicateID)
		}
		c.index[e.ID] = len(c.entries)
		c.entries = append(c.entries, e.clone())
	}
	return c, nil
}

// MustCatalog is NewCatalog for tables known at compile time.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(fmt.Sprintf("about: invalid catalog: %v", err))
	}
	return c
}

// Lookup resolves an id to a copy of its entry.
func (c *Catalog) Lookup(id string) (Entry, error) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", id, ErrUnknownTab)
	}
	return c.entries[i].clone(), nil
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Initial is the id selected when a panel is first mounted.
func (c *Catalog) Initial() string {
	return c.entries[0].ID
}

func (c *Catalog) Len() int { return len(c.entries) }

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.clone()
	}
	return out
}

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}
