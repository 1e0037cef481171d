package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

type memIdempotencyRepo struct {
	mu      sync.Mutex
	keys    map[string]*entity.IdempotencyKey
	lookups atomic.Int32
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.lookups.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[userID.String()+":"+key], nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.UserID.String()+":"+ikey.Key] = ikey
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func idempotentEngine(repo *memIdempotencyRepo, uid uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, uid)
		c.Next()
	})
	r.Use(Idempotency(IdempotencyConfig{Repo: repo}))
	r.POST("/records", handler)
	return r
}

func postWithKey(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/records", nil)
	req.Header.Set(IdempotencyKeyHeader, key)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConcurrentSameKeyRunsOnce(t *testing.T) {
	repo := newMemIdempotencyRepo()
	entered := make(chan struct{})
	release := make(chan struct{})
	var runs atomic.Int32

	r := idempotentEngine(repo, uuid.New(), func(c *gin.Context) {
		if runs.Add(1) == 1 {
			close(entered)
		}
		<-release
		c.JSON(http.StatusCreated, gin.H{"id": "r-1"})
	})

	first := make(chan *httptest.ResponseRecorder)
	go func() { first <- postWithKey(r, "k-1") }()
	<-entered

	second := postWithKey(r, "k-1")
	if second.Code != http.StatusConflict {
		t.Fatalf("same key while in flight: status %d, want 409", second.Code)
	}
	if n := repo.lookups.Load(); n != 1 {
		t.Errorf("in-flight duplicate reached the key store: %d lookups, want 1", n)
	}

	close(release)
	if w := <-first; w.Code != http.StatusCreated {
		t.Fatalf("first submit: status %d", w.Code)
	}

	replay := postWithKey(r, "k-1")
	if replay.Code != http.StatusCreated {
		t.Errorf("replay status %d, want 201", replay.Code)
	}
	if replay.Header().Get(IdempotencyReplayedHeader) != "true" {
		t.Error("replay not marked")
	}
	if replay.Body.String() != `{"id":"r-1"}` {
		t.Errorf("replay body %q", replay.Body.String())
	}
	if n := runs.Load(); n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
}

func TestRejectedSubmitIsNotStored(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var runs atomic.Int32
	r := idempotentEngine(repo, uuid.New(), func(c *gin.Context) {
		if runs.Add(1) == 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	tests := []struct {
		name string
		want int
	}{
		{"rejected", http.StatusUnprocessableEntity},
		{"corrected resend", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postWithKey(r, "k-2")
			if w.Code != tt.want {
				t.Errorf("status %d, want %d", w.Code, tt.want)
			}
			if w.Header().Get(IdempotencyReplayedHeader) != "" {
				t.Error("unexpected replay")
			}
		})
	}
	if n := runs.Load(); n != 2 {
		t.Errorf("handler ran %d times, want 2", n)
	}
}

func TestKeysAreScopedPerUser(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var runs atomic.Int32
	handler := func(c *gin.Context) {
		runs.Add(1)
		c.JSON(http.StatusCreated, gin.H{})
	}
	alice := idempotentEngine(repo, uuid.New(), handler)
	bob := idempotentEngine(repo, uuid.New(), handler)

	postWithKey(alice, "shared")
	if w := postWithKey(bob, "shared"); w.Header().Get(IdempotencyReplayedHeader) != "" {
		t.Error("another user's response was replayed")
	}
	if n := runs.Load(); n != 2 {
		t.Errorf("handler ran %d times, want 2", n)
	}
}
