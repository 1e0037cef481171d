package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 300,
		"message": "ok",
		"data":    data,
	})
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeEnvelope(w, http.StatusUnauthorized, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]string{"access_token": "tok-1", "token_type": "Bearer"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", nil)

	if _, err := c.Login(context.Background(), "owner@shop.pk", "wrong"); !errors.Is(err, apperror.ErrAuthFailure) {
		t.Fatalf("expected auth failure, got %v", err)
	}
	if c.Session().Authenticated() {
		t.Fatal("failed login must not begin a session")
	}

	if _, err := c.Login(context.Background(), "owner@shop.pk", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !c.Session().Authenticated() || c.Session().Token() != "tok-1" || c.Session().Email() != "owner@shop.pk" {
		t.Errorf("session not started: token=%q email=%q", c.Session().Token(), c.Session().Email())
	}

	c.Logout()
	if c.Session().Authenticated() {
		t.Error("logout must end the session")
	}
}

func TestLoginUnreachableIsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Login(context.Background(), "a@b.c", "x")
	if !errors.Is(err, apperror.ErrAuthFailure) {
		t.Errorf("expected auth failure, got %v", err)
	}
}

func TestListSendsTokenAndNeverReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeEnvelope(w, http.StatusUnauthorized, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer srv.Close()

	s := NewSession()
	s.Begin("tok", "owner@shop.pk", timeZero)
	records, err := New(srv.URL, s).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", records)
	}
}

func TestListDecodesRecords(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []entity.Record{{ID: id, Name: "Ali", Type: "Purchase", Price: "300"}})
	}))
	defer srv.Close()

	records, err := New(srv.URL, nil).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != id || !records[0].Type.IsPurchase() {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestStoreFailuresAreNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, nil)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()
	rec := &entity.Record{Name: "Ali"}

	if _, err := c.List(ctx); !errors.Is(err, apperror.ErrNetworkFailure) {
		t.Errorf("list: expected network failure, got %v", err)
	}
	if _, err := c.Create(ctx, rec, ""); !errors.Is(err, apperror.ErrNetworkFailure) {
		t.Errorf("create: expected network failure, got %v", err)
	}
	if _, err := c.Update(ctx, uuid.New(), rec); !errors.Is(err, apperror.ErrNetworkFailure) {
		t.Errorf("update: expected network failure, got %v", err)
	}
	if err := c.Delete(ctx, uuid.New()); !errors.Is(err, apperror.ErrNetworkFailure) {
		t.Errorf("delete: expected network failure, got %v", err)
	}
}

func TestCreateSendsIdempotencyKey(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if got := r.Header.Get(IdempotencyKeyHeader); got != "key-1" {
			t.Errorf("expected idempotency key, got %q", got)
		}
		var rec entity.Record
		_ = json.NewDecoder(r.Body).Decode(&rec)
		rec.ID = uuid.New()
		writeEnvelope(w, http.StatusCreated, rec)
	}))
	defer srv.Close()

	out, err := New(srv.URL, nil).Create(context.Background(), &entity.Record{Name: "Ali", PaidAmount: "10"}, "key-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID == uuid.Nil || out.Name != "Ali" || out.PaidAmount != "10" {
		t.Errorf("unexpected record %+v", out)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected exactly one call, got %d", calls)
	}
}

func TestUpdateAndDeleteTargetRecordPath(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers/"+id.String() {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPut:
			writeEnvelope(w, http.StatusOK, entity.Record{ID: id, Name: "Sara"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	out, err := c.Update(context.Background(), id, &entity.Record{Name: "Sara"})
	if err != nil || out.ID != id {
		t.Fatalf("update: %+v, %v", out, err)
	}
	if err := c.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestPlainStoreResponses(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
			_, _ = w.Write([]byte(`{"message":"Login successful"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/customers":
			if r.Header.Get("Authorization") != "" {
				t.Errorf("no token was issued, got Authorization %q", r.Header.Get("Authorization"))
			}
			_ = json.NewEncoder(w).Encode([]entity.Record{{ID: id, Name: "Ali", Price: "1000"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/customers":
			var rec entity.Record
			_ = json.NewDecoder(r.Body).Decode(&rec)
			rec.ID = id
			_ = json.NewEncoder(w).Encode(rec)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	ctx := context.Background()

	if _, err := c.Login(ctx, "owner@shop.pk", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !c.Session().Authenticated() {
		t.Fatal("a 2xx login without a token should still sign in")
	}

	records, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != id || records[0].Name != "Ali" {
		t.Errorf("unexpected records %+v", records)
	}

	created, err := c.Create(ctx, &entity.Record{Name: "Sara"}, "key-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != id || created.Name != "Sara" {
		t.Errorf("unexpected created record %+v", created)
	}

	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("delete with 200: %v", err)
	}
}

func TestPayload(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"envelope", `{"success":true,"message":"ok","data":[1]}`, `[1]`},
		{"bare array", ` [1,2] `, `[1,2]`},
		{"bare object", `{"_id":"x","name":"Ali"}`, `{"_id":"x","name":"Ali"}`},
		{"empty", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(payload([]byte(tt.body))); got != tt.want {
				t.Errorf("payload(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
