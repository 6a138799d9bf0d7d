package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CookieStore reads the snapshot from a request's cookies and writes it back
// on the response, in the format the browser client uses.
type CookieStore struct {
	req *http.Request
	w   http.ResponseWriter
	ttl time.Duration
	now func() time.Time
}

func NewCookieStore(r *http.Request, w http.ResponseWriter, ttl time.Duration) *CookieStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CookieStore{req: r, w: w, ttl: ttl, now: time.Now}
}

func (c *CookieStore) Load(_ context.Context) (Snapshot, error) {
	tasks, err := c.value(KeyTasks)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := c.value(KeyCategories)
	if err != nil {
		return Snapshot{}, err
	}
	return decodeValues(tasks, categories)
}

func (c *CookieStore) Save(_ context.Context, snap Snapshot) error {
	if c.w == nil {
		return errors.New("storage: cookie store has no response writer")
	}
	tasks, categories, err := encodeValues(snap)
	if err != nil {
		return err
	}
	expires := c.now().Add(c.ttl)
	for _, kv := range [][2]string{{KeyTasks, tasks}, {KeyCategories, categories}} {
		http.SetCookie(c.w, &http.Cookie{
			Name:     kv[0],
			Value:    url.PathEscape(kv[1]),
			Path:     "/",
			Expires:  expires,
			MaxAge:   int(c.ttl / time.Second),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return nil
}

func (c *CookieStore) value(name string) (string, error) {
	if c.req == nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	ck, err := c.req.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", err
	}
	raw, err := url.PathUnescape(ck.Value)
	if err != nil {
		return "", fmt.Errorf("unescape %s: %w", name, err)
	}
	return raw, nil
}
