package pipeline

import "testing"

func TestFragmentCache_GetPut(t *testing.T) {
	t.Parallel()

	c := NewFragmentCache(8)

	if _, ok := c.Get(OptionMath, "# a"); ok {
		t.Fatal("Get() on empty cache returned a hit")
	}

	c.Put(OptionMath, "# a", "<h1>a</h1>")

	got, ok := c.Get(OptionMath, "# a")
	if !ok || got != "<h1>a</h1>" {
		t.Errorf("Get() = %q, %v, want hit", got, ok)
	}
	if _, ok := c.Get(OptionMath|OptionSanitize, "# a"); ok {
		t.Error("Get() with other options returned a hit")
	}
	if _, ok := c.Get(OptionMath, "# b"); ok {
		t.Error("Get() with other markdown returned a hit")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestFragmentCache_Capacity(t *testing.T) {
	t.Parallel()

	c := NewFragmentCache(2)
	c.Put(0, "a", "A")
	c.Put(0, "b", "B")
	c.Put(0, "c", "C")

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(0, "a"); ok {
		t.Error("oldest entry should be evicted")
	}
	if got, ok := c.Get(0, "c"); !ok || got != "C" {
		t.Errorf("Get(c) = %q, %v", got, ok)
	}
}

func TestFragmentCache_ClampsCapacity(t *testing.T) {
	t.Parallel()

	c := NewFragmentCache(0)
	c.Put(0, "a", "A")
	c.Put(0, "b", "B")

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 for clamped capacity", c.Len())
	}
}
