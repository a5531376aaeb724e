package authoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/p-n-ai/pai-authoring/internal/platform/cache"
)

// NoticeKind distinguishes the transient acknowledgements shown after a move.
type NoticeKind string

const (
	// NoticeHighlight marks a unit that was just moved.
	NoticeHighlight NoticeKind = "highlight"
	// NoticeError carries the message of a rejected move.
	NoticeError NoticeKind = "error"
)

// Notice is a time-boxed acknowledgement for a course. A course holds at most
// one active notice per kind; posting a new one replaces the old.
type Notice struct {
	CourseID  string     `json:"course_id"`
	Kind      NoticeKind `json:"kind"`
	UnitID    int        `json:"unit_id,omitempty"`
	Message   string     `json:"message,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// NoticeBoard stores notices until they expire.
type NoticeBoard interface {
	Post(ctx context.Context, n Notice) error
	Active(ctx context.Context, courseID string) ([]Notice, error)
}

var noticeKinds = []NoticeKind{NoticeHighlight, NoticeError}

// MemoryNotices is an in-process NoticeBoard.
type MemoryNotices struct {
	mu      sync.Mutex
	now     func() time.Time
	notices map[string]Notice
}

// NewMemoryNotices creates a notice board. now defaults to time.Now.
func NewMemoryNotices(now func() time.Time) *MemoryNotices {
	if now == nil {
		now = time.Now
	}
	return &MemoryNotices{now: now, notices: make(map[string]Notice)}
}

func (b *MemoryNotices) Post(_ context.Context, n Notice) error {
	if err := validateNotice(n); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices[noticeKey(n.CourseID, n.Kind)] = n
	return nil
}

func (b *MemoryNotices) Active(_ context.Context, courseID string) ([]Notice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	var out []Notice
	for _, kind := range noticeKinds {
		key := noticeKey(courseID, kind)
		n, ok := b.notices[key]
		if !ok {
			continue
		}
		if !now.Before(n.ExpiresAt) {
			delete(b.notices, key)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// RedisNotices keeps notices in Redis and lets key expiry clear them.
type RedisNotices struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewRedisNotices creates a Redis-backed notice board. now defaults to
// time.Now and sets the remaining lifetime of posted notices.
func NewRedisNotices(c *cache.Cache, now func() time.Time) *RedisNotices {
	if now == nil {
		now = time.Now
	}
	return &RedisNotices{cache: c, now: now}
}

func (b *RedisNotices) Post(ctx context.Context, n Notice) error {
	if err := validateNotice(n); err != nil {
		return err
	}
	ttl := n.ExpiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	return b.cache.SetTTL(ctx, noticeKey(n.CourseID, n.Kind), data, ttl)
}

func (b *RedisNotices) Active(ctx context.Context, courseID string) ([]Notice, error) {
	var out []Notice
	for _, kind := range noticeKinds {
		data, ok, err := b.cache.Get(ctx, noticeKey(courseID, kind))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var n Notice
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("unmarshal notice: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

func validateNotice(n Notice) error {
	if n.CourseID == "" {
		return fmt.Errorf("notice course_id is required")
	}
	if n.Kind != NoticeHighlight && n.Kind != NoticeError {
		return fmt.Errorf("unknown notice kind: %q", n.Kind)
	}
	return nil
}

func noticeKey(courseID string, kind NoticeKind) string {
	return "notice:" + courseID + ":" + string(kind)
}
