package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []entity.Record
	failAll error
}

func (f *fakeRecordRepo) Create(_ context.Context, r *entity.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, r := range f.records {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, r *entity.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == r.ID {
			f.records[i] = *r
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecordRepo) List(_ context.Context, search string) ([]entity.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]entity.Record, 0, len(f.records))
	for _, r := range f.records {
		if search == "" || strings.Contains(strings.ToLower(r.Name), strings.ToLower(search)) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}
