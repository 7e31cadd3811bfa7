// Package sheets stores farm records in a Google spreadsheet, one tab per
// record kind. Reads are served from a short-lived cache that every write
// through this client invalidates.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"farmflow/internal/cache"
	"farmflow/internal/core"
)

const DefaultCacheTTL = 30 * time.Second

type Config struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	CacheTTL        time.Duration
}

type Client struct {
	api  ValuesAPI
	rows *cache.LRUCache[[]row]
	mu   sync.Mutex // serialises writes so id assignment sees its own appends
	now  func() time.Time
}

// New connects to the spreadsheet with service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	api, err := newValuesAPI(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets client ready", "spreadsheet_id", cfg.SpreadsheetID)
	return NewWithAPI(api, cfg.CacheTTL), nil
}

// NewWithAPI builds a client over any ValuesAPI. A non-positive ttl uses
// DefaultCacheTTL.
func NewWithAPI(api ValuesAPI, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		api:  api,
		rows: cache.NewLRUCache[[]row](8, ttl),
		now:  time.Now,
	}
}

// Cache exposes the row cache for periodic cleanup.
func (c *Client) Cache() cache.Cleaner { return c.rows }

func (c *Client) String() string { return "sheets" }

func (c *Client) stamp() core.Date { return core.DateOf(c.now()) }

func fetch[T any](ctx context.Context, c *Client, t table[T], cached bool) ([]row, error) {
	if cached {
		if rows, ok := c.rows.Get(t.tab); ok {
			return rows, nil
		}
	}
	values, err := c.api.Get(ctx, t.dataRange())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.tab, err)
	}
	rows := decodeRows(values, t.width())
	c.rows.Set(t.tab, rows)
	return rows, nil
}

func list[T any](ctx context.Context, c *Client, t table[T], keep func(T) bool) ([]T, error) {
	rows, err := fetch(ctx, c, t, true)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for _, r := range rows {
		if r.deleted() {
			continue
		}
		rec := t.decode(r.id, r.cells)
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func find(rows []row, id int64) (row, bool) {
	for _, r := range rows {
		if r.id == id && !r.deleted() {
			return r, true
		}
	}
	return row{}, false
}

func get[T any](ctx context.Context, c *Client, t table[T], id int64) (T, error) {
	var zero T
	rows, err := fetch(ctx, c, t, true)
	if err != nil {
		return zero, err
	}
	r, ok := find(rows, id)
	if !ok {
		return zero, core.NotFound(t.kind, id)
	}
	return t.decode(r.id, r.cells), nil
}

// create appends the record built for the next free id. Tombstoned ids count
// as taken.
func create[T any](ctx context.Context, c *Client, t table[T], build func(id int64) T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := fetch(ctx, c, t, false)
	if err != nil {
		return zero, err
	}
	var maxID int64
	for _, r := range rows {
		maxID = max(maxID, r.id)
	}
	rec := build(maxID + 1)
	err = c.api.Append(ctx, t.appendRange(), [][]any{t.encode(rec)})
	c.rows.Delete(t.tab)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", t.kind, err)
	}
	slog.DebugContext(ctx, "Appended sheet row", "tab", t.tab, "id", maxID+1)
	return rec, nil
}

func update[T any](ctx context.Context, c *Client, t table[T], id int64, build func(old T) (T, error)) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := fetch(ctx, c, t, false)
	if err != nil {
		return zero, err
	}
	r, ok := find(rows, id)
	if !ok {
		return zero, core.NotFound(t.kind, id)
	}
	rec, err := build(t.decode(r.id, r.cells))
	if err != nil {
		return zero, err
	}
	err = c.api.Update(ctx, t.rowRange(r.num), [][]any{t.encode(rec)})
	c.rows.Delete(t.tab)
	if err != nil {
		return zero, fmt.Errorf("update %s %d: %w", t.kind, id, err)
	}
	return rec, nil
}

func remove[T any](ctx context.Context, c *Client, t table[T], id int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := fetch(ctx, c, t, false)
	if err != nil {
		return 0, err
	}
	r, ok := find(rows, id)
	if !ok {
		return 0, core.NotFound(t.kind, id)
	}
	err = c.api.Update(ctx, t.rowRange(r.num), [][]any{t.tombstoneRow(id)})
	c.rows.Delete(t.tab)
	if err != nil {
		return 0, fmt.Errorf("delete %s %d: %w", t.kind, id, err)
	}
	return id, nil
}
