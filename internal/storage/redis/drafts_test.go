package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront-checkout/internal/config"
	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/storage/memory"
)

func sampleDraft() *model.OrderDraft {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &model.OrderDraft{
		ID:        uuid.MustParse("4f9a1d3e-8b8a-4c1e-9a55-0f6b9b1d2c10"),
		UserID:    7,
		Items:     []model.LineItem{{ProductName: "mug", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")}},
		Subtotal:  decimal.RequireFromString("25"),
		Status:    model.DraftStatusDraft,
		Pricing:   model.PricingResult{Subtotal: decimal.RequireFromString("25"), Total: decimal.RequireFromString("25")},
		CreatedAt: created,
		UpdatedAt: created,
		ExpiresAt: created.Add(30 * time.Minute),
	}
}

func TestDraftStoreGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db)
	draft := sampleDraft()
	payload, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectGet(draftKey(draft.ID)).SetVal(string(payload))
	got, err := store.Get(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if got.ID != draft.ID || got.UserID != 7 || len(got.Items) != 1 || !got.Subtotal.Equal(draft.Subtotal) {
		t.Fatalf("unexpected draft %+v", got)
	}

	mock.ExpectGet(draftKey(draft.ID)).RedisNil()
	if _, err := store.Get(context.Background(), draft.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectGet(draftKey(draft.ID)).SetErr(errors.New("conn refused"))
	if _, err := store.Get(context.Background(), draft.ID); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}

	mock.ExpectGet(draftKey(draft.ID)).SetVal("{not json")
	if _, err := store.Get(context.Background(), draft.ID); err == nil {
		t.Fatal("expected decode error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDraftStoreSave(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db)
	draft := sampleDraft()
	payload, _ := json.Marshal(draft)

	mock.ExpectSet(draftKey(draft.ID), payload, 30*time.Minute).SetVal("OK")
	if err := store.Save(context.Background(), draft, 30*time.Minute); err != nil {
		t.Fatalf("save returned error: %v", err)
	}

	mock.ExpectSet(draftKey(draft.ID), payload, 30*time.Minute).SetErr(errors.New("readonly"))
	if err := store.Save(context.Background(), draft, 30*time.Minute); err == nil {
		t.Fatal("expected save error")
	}

	if err := store.Save(context.Background(), nil, time.Minute); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected error for nil draft, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDraftStoreDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewDraftStore(db)
	id := uuid.New()

	mock.ExpectDel(draftKey(id)).SetVal(1)
	if err := store.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	mock.ExpectDel(draftKey(id)).SetVal(0)
	if err := store.Delete(context.Background(), id); err != nil {
		t.Fatalf("deleting a missing draft should succeed, got %v", err)
	}

	mock.ExpectDel(draftKey(id)).SetErr(errors.New("down"))
	if err := store.Delete(context.Background(), id); err == nil {
		t.Fatal("expected delete error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDraftKey(t *testing.T) {
	id := uuid.MustParse("4f9a1d3e-8b8a-4c1e-9a55-0f6b9b1d2c10")
	if got := draftKey(id); got != "checkout:draft:4f9a1d3e-8b8a-4c1e-9a55-0f6b9b1d2c10" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewDraftRepositoryFallsBackToMemory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	repo := newDraftRepository(draftParams{
		Lifecycle: lc,
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if _, ok := repo.(*memory.DraftStore); !ok {
		t.Fatalf("expected memory store, got %T", repo)
	}
}

func TestNewDraftRepositoryUsesRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	original := newClient
	t.Cleanup(func() { newClient = original })
	newClient = func(*config.Config) *goredis.Client { return db }

	lc := fxtest.NewLifecycle(t)
	repo := newDraftRepository(draftParams{
		Lifecycle: lc,
		Config:    &config.Config{RedisAddress: "localhost:6379"},
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if _, ok := repo.(*DraftStore); !ok {
		t.Fatalf("expected redis store, got %T", repo)
	}

	mock.ExpectPing().SetErr(errors.New("unreachable"))
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start should tolerate ping failure, got %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
