package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/observability"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client, err := New(Config{Addr: mini.Addr(), MaxRetries: -1}, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func TestClient_SetGetDel(t *testing.T) {
	client, mini := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, err := client.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("expected v, got %q ok=%v err=%v", got, ok, err)
	}

	if err := client.Del(ctx, "k", "missing"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if mini.Exists("k") {
		t.Error("expected key to be deleted")
	}
}

func TestClient_GetMissing(t *testing.T) {
	client, _ := newTestClient(t)

	got, ok, err := client.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("expected no error for missing key, got %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected miss, got %q ok=%v", got, ok)
	}
}

func TestClient_SetTTL(t *testing.T) {
	client, mini := newTestClient(t)

	_ = client.Set(context.Background(), "k", []byte("v"), time.Minute)
	if ttl := mini.TTL("k"); ttl != time.Minute {
		t.Errorf("expected 1m TTL, got %v", ttl)
	}
	mini.FastForward(2 * time.Minute)
	if _, ok, _ := client.Get(context.Background(), "k"); ok {
		t.Error("expected key to expire")
	}
}

func TestClient_Health(t *testing.T) {
	client, mini := newTestClient(t)
	ctx := context.Background()

	if h := client.CheckHealth(ctx); h.Status != observability.HealthStatusUp {
		t.Fatalf("expected up, got %s (%s)", h.Status, h.Message)
	}

	mini.Close()
	if h := client.CheckHealth(ctx); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down after server stop, got %s", h.Status)
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	client, _ := newTestClient(t)
	if err := client.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Addr != "localhost:6379" || cfg.PoolSize != 10 {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	cfg.DB = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative db to fail")
	}
}
