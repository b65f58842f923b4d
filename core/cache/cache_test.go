package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("test-set-get", "val", 0)
	got, ok := c.Get("test-set-get")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("nonexistent-key-xyz")
	if ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.m.Store("k", cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("k"); ok {
		t.Error("Get expired key: want false")
	}
}

func TestGetOrDef(t *testing.T) {
	c := NewCache()
	if got := c.GetOrDef("missing", 42); got != 42 {
		t.Errorf("GetOrDef = %v, want 42", got)
	}
	c.Set("present", "x", 0)
	if got := c.GetOrDef("present", "y"); got != "x" {
		t.Errorf("GetOrDef = %v, want x", got)
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set("test-delete", "x", 0)
	c.Delete("test-delete")
	if _, ok := c.Get("test-delete"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestCompositeKeys(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"a", 1}, "composite", 0)
	got, ok := c.GetN("a", 1)
	if !ok || got != "composite" {
		t.Errorf("GetN = %v/%v, want composite/true", got, ok)
	}
}

func TestLen(t *testing.T) {
	c := NewCache()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	if n := c.Len(); n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
}
