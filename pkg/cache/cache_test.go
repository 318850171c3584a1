package cache

import (
	"testing"
	"time"
)

func TestURLCacheSetGet(t *testing.T) {
	c := NewURLCache(2, time.Minute)

	c.Set("a", "http://a")
	c.Set("b", "http://b")

	if got, ok := c.Get("a"); !ok || got != "http://a" {
		t.Errorf("Get(a) = %q, %v; want http://a, true", got, ok)
	}

	// "b" is now least recently used
	c.Set("c", "http://c")
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestURLCacheExpiry(t *testing.T) {
	c := NewURLCache(4, 20*time.Millisecond)
	c.Set("a", "http://a")

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expected entry to expire")
	}
}

func TestNewURLCacheDefaults(t *testing.T) {
	c := NewURLCache(0, 0)
	for i := 0; i < DefaultSize+1; i++ {
		c.Set(string(rune('a'+i%26))+string(rune(i)), "x")
	}
	if c.Len() != DefaultSize {
		t.Errorf("Len() = %d, want %d", c.Len(), DefaultSize)
	}
}

func TestKey(t *testing.T) {
	k1, err := Key(map[string]any{"zoom": 3, "map": "m"})
	if err != nil {
		t.Fatalf("Key() error: %v", err)
	}
	k2, _ := Key(map[string]any{"map": "m", "zoom": 3})
	k3, _ := Key(map[string]any{"map": "m", "zoom": 4})

	if k1 != k2 {
		t.Error("equal values produced different keys")
	}
	if k1 == k3 {
		t.Error("different values produced the same key")
	}
	if len(k1) != 64 {
		t.Errorf("len(key) = %d, want 64", len(k1))
	}

	if _, err := Key(func() {}); err == nil {
		t.Error("expected error for unencodable value")
	}
}
