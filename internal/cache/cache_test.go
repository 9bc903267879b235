package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("The EPA Grant Award for Clean Water Initiative")
	k2 := Key("The EPA Grant Award for Clean Water Initiative")
	k3 := Key("different document text")

	if k1 != k2 {
		t.Error("Expected identical text to produce identical keys")
	}
	if k1 == k3 {
		t.Error("Expected different text to produce different keys")
	}
	if !strings.HasPrefix(k1, "grantsieve:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", k1)
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("value")) {
		t.Errorf("Expected hit with stored value, got %q found=%v", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(Key("doc"), []byte(`{"grants":[]}`), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got, found := c.Get(Key("doc"))
	if !found || !bytes.Equal(got, []byte(`{"grants":[]}`)) {
		t.Errorf("Expected stored value back, got %q found=%v", got, found)
	}
}

func TestDiskCache_ExpiredEntryDropped(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to be a miss")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Simulate a fresh process: the memory layer is empty, the disk layer
	// still holds the entry
	fresh := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := fresh.Get("k")
	if !found || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Expected disk hit, got %q found=%v", got, found)
	}

	// The hit is now served from memory even if the disk entry goes away
	if err := fresh.disk.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := fresh.Get("k"); !found {
		t.Error("Expected promoted entry in the memory layer")
	}
}
