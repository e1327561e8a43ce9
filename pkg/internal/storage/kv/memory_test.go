package kv

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestMemoryKVSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVWithClock(time.Now)

	if err := store.Set(ctx, "alpha", []byte("one"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "alpha")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(got) != "one" {
		t.Fatalf("expected %q, got %q", "one", got)
	}

	exists, err := store.Exists(ctx, "alpha")
	if err != nil || !exists {
		t.Fatalf("expected key to exist, exists=%v err=%v", exists, err)
	}

	if err := store.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "alpha"); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestMemoryKVTTLExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	store := NewMemoryKVWithClock(func() time.Time { return now })

	if err := store.Set(ctx, "ephemeral", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// 过期前可读
	if _, err := store.Get(ctx, "ephemeral"); err != nil {
		t.Fatalf("get before expiry failed: %v", err)
	}

	// 推进时钟越过 TTL
	now = now.Add(5*time.Minute + time.Second)

	if _, err := store.Get(ctx, "ephemeral"); err == nil {
		t.Fatal("expected expired key to be gone")
	}

	exists, err := store.Exists(ctx, "ephemeral")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}

	if exists {
		t.Fatal("expected expired key to not exist")
	}
}

func TestMemoryKVKeysSubstring(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVWithClock(time.Now)

	for _, key := range []string{"documents_root", "documents_42", "folders"} {
		if err := store.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatalf("set %s failed: %v", key, err)
		}
	}

	keys, err := store.Keys(ctx, "documents")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}

	sort.Strings(keys)

	want := []string{"documents_42", "documents_root"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}

	all, err := store.Keys(ctx, "*")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %v", all)
	}
}

func TestTTLEnvelopeRoundTrip(t *testing.T) {
	now := time.Now()

	encoded, wrapped, err := encodeWithTTL([]byte("payload"), time.Minute)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !wrapped {
		t.Fatal("expected value to be wrapped")
	}

	val, expired, isEnv, err := decodeWithTTL(encoded, now)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !isEnv || expired {
		t.Fatalf("expected live envelope, isEnv=%v expired=%v", isEnv, expired)
	}

	if string(val) != "payload" {
		t.Fatalf("expected %q, got %q", "payload", val)
	}

	// 越过过期时间后视为过期
	_, expired, _, err = decodeWithTTL(encoded, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !expired {
		t.Fatal("expected envelope to be expired")
	}

	// 非封装值原样返回
	plain, expired, isEnv, err := decodeWithTTL([]byte("raw"), now)
	if err != nil || expired || isEnv {
		t.Fatalf("unexpected result for plain value: %v %v %v", err, expired, isEnv)
	}

	if string(plain) != "raw" {
		t.Fatalf("expected %q, got %q", "raw", plain)
	}
}
