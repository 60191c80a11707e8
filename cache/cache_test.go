package cache

import (
	"testing"
	"time"
)

func TestSnapshotCache_HitAndMiss(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")

	if _, hit := c.Get(key, time.Minute); hit {
		t.Error("empty cache reported a hit")
	}

	c.Set(key, "<html>snapshot</html>")

	got, hit := c.Get(key, time.Minute)
	if !hit {
		t.Fatal("expected a hit after Set")
	}
	if got != "<html>snapshot</html>" {
		t.Errorf("unexpected snapshot: %q", got)
	}
}

func TestSnapshotCache_ZeroMaxAgeDisablesLookup(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")
	c.Set(key, "<html></html>")

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 must disable cache lookup")
	}
}

func TestSnapshotCache_CapacityEviction(t *testing.T) {
	c := New(2)
	c.Set(Key("a"), "a")
	c.Set(Key("b"), "b")
	c.Set(Key("c"), "c")

	hits := 0
	for _, u := range []string{"a", "b", "c"} {
		if _, hit := c.Get(Key(u), time.Minute); hit {
			hits++
		}
	}
	if hits > 2 {
		t.Errorf("cache exceeded capacity: %d entries alive", hits)
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("https://example.com") != Key("https://example.com") {
		t.Error("same URL must produce the same key")
	}
	if Key("https://example.com") == Key("https://example.org") {
		t.Error("different URLs must produce different keys")
	}
}
