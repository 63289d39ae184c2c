package preview

import (
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set("k", "v", 0)
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get(k) = %q, %v; want v, true", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after Delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	c.Set("short", "v", time.Millisecond)
	c.Set("long", "v", time.Hour)

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}
	c.Set("short2", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	c.Cleanup()

	if size := c.Stats().Size; size != 1 {
		t.Errorf("Size after Cleanup = %d, want 1", size)
	}
}

func TestMemoryCache_ClearAndStats(t *testing.T) {
	c := NewMemoryCache()
	c.Set("a", "1", 0)
	c.Set("b", "2", 0)
	c.Get("a")
	c.Get("zzz")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", stats)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}

	c.Clear()
	if size := c.Stats().Size; size != 0 {
		t.Errorf("Size after Clear = %d, want 0", size)
	}
}
