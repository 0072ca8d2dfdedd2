package mcpserver

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type cached struct {
	key     string
	spec    *compiledSpec
	expires time.Time // zero means never
}

func (c *cached) expired(now time.Time) bool {
	return !c.expires.IsZero() && now.After(c.expires)
}

// specCacheStore keeps compiled documents for the lifetime of a session.
// The front of order is the most recently used entry.
type specCacheStore struct {
	mu      sync.Mutex
	order   *list.List
	byKey   map[string]*list.Element
	maxSize int
}

func newSpecCache(maxSize int) *specCacheStore {
	return &specCacheStore{
		order:   list.New(),
		byKey:   make(map[string]*list.Element),
		maxSize: max(maxSize, 1),
	}
}

// get returns the document stored under key, or nil when absent or expired.
func (c *specCacheStore) get(key string) *compiledSpec {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	entry := el.Value.(*cached)
	if entry.expired(time.Now()) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return entry.spec
}

// putWithTTL stores spec under key. A non-positive ttl never expires.
func (c *specCacheStore) putWithTTL(key string, spec *compiledSpec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cached{key: key, spec: spec}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	if el, ok := c.byKey[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(entry)
}

func (c *specCacheStore) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.byKey, el.Value.(*cached).key)
}

// sweep drops every expired entry.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*cached).expired(now) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// makeCacheKey identifies a document input. Files are keyed by absolute path
// and modification time so edits on disk are picked up; inline content by its
// SHA-256. It returns "" when the input cannot be keyed.
func makeCacheKey(in specInput) string {
	switch {
	case in.File != "":
		abs, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case in.Content != "":
		sum := sha256.Sum256([]byte(in.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	return ""
}
