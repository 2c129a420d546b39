package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

var testSecret = []byte("test-jwt-secret")

type recordedEvent struct {
	Topic string
	Key   string
	Event events.Event
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (r *recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, _ := event.(events.Event)
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Event: ev})
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]models.Product
	err     error
	queries []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]models.Product{}} }

func (f *fakeIndex) Put(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.docs[p.ID.String()] = *p
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, _, _ int) (int64, []models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return 0, nil, f.err
	}
	out := make([]models.Product, 0, len(f.docs))
	for _, p := range f.docs {
		out = append(out, p)
	}
	return int64(len(out)), out, nil
}

var errBoom = errors.New("boom")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return &repo.GormRepo{DB: gdb}
}

func newTestUserService(t *testing.T) (*UserService, *recorder) {
	t.Helper()

	rec := &recorder{}
	return &UserService{
		Repo:        newTestRepo(t),
		Secret:      testSecret,
		TokenExpire: time.Hour,
		Events:      rec,
	}, rec
}

func newTestCatalogService(t *testing.T) (*CatalogService, *recorder, *fakeIndex) {
	t.Helper()

	rec := &recorder{}
	idx := newFakeIndex()
	return &CatalogService{Repo: newTestRepo(t), Events: rec, Index: idx}, rec, idx
}
