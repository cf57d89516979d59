package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	kv, err := NewRedisKV(srv.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewRedisKV: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv, srv
}

func TestRedisKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, srv := newRedisKV(t)
	if err := kv.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	s := NewKVStore(kv)
	want := sampleBundle()
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	if !srv.Exists(KeyLastHabitDate) || !srv.Exists(KeyTasks) {
		t.Fatalf("expected keys in redis, got %v", srv.Keys())
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assertSameBundle(t, got, want)

	reset := sampleBundle()
	reset.Streak = 0
	reset.LastHabitDate = nil
	if err := s.Save(ctx, reset); err != nil {
		t.Fatal(err)
	}
	if srv.Exists(KeyLastHabitDate) {
		t.Fatalf("last habit date should be deleted after reset")
	}
}

func TestRedisKVMissingKeys(t *testing.T) {
	ctx := context.Background()
	kv, srv := newRedisKV(t)
	srv.Set(KeyStreak, "3")

	values, err := kv.Get(ctx, []string{KeyStreak, KeyTasks, KeyLastHabitDate})
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 || values[KeyStreak] != "3" {
		t.Fatalf("expected only the streak key, got %v", values)
	}

	b, err := NewKVStore(kv).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if b.Streak != 3 || len(b.Tasks) != 0 || b.LastHabitDate != nil {
		t.Fatalf("unexpected bundle %+v", b)
	}
}

func TestRedisKVUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()
	if _, err := NewRedisKV(addr, "", 0); err == nil {
		t.Fatal("expected error for a stopped server")
	}
}
