package keyedcounter

import "testing"

func TestCounter_IncDec(t *testing.T) {
	c := New[string]()

	if n := c.Inc("a"); n != 1 {
		t.Fatalf("first Inc: got %d, want 1", n)
	}
	if n := c.Inc("a"); n != 2 {
		t.Fatalf("second Inc: got %d, want 2", n)
	}
	if !c.IsTracked("a") {
		t.Fatal("expected \"a\" to be tracked")
	}

	if n := c.Dec("a"); n != 1 {
		t.Fatalf("first Dec: got %d, want 1", n)
	}
	if n := c.Dec("a"); n != 0 {
		t.Fatalf("second Dec: got %d, want 0", n)
	}
	if c.IsTracked("a") {
		t.Fatal("expected \"a\" to be removed after count reaches zero")
	}
}

func TestCounter_DecAbsentKeyNoop(t *testing.T) {
	c := New[string]()
	if n := c.Dec("missing"); n != 0 {
		t.Fatalf("Dec on absent key: got %d, want 0", n)
	}
	if c.Len() != 0 {
		t.Fatalf("Dec on absent key must not create an entry, Len=%d", c.Len())
	}
}

func TestCounter_IndependentKeys(t *testing.T) {
	c := New[int]()
	c.Inc(1)
	c.Inc(1)
	c.Inc(2)

	if c.Count(1) != 2 {
		t.Fatalf("Count(1): got %d, want 2", c.Count(1))
	}
	if c.Count(2) != 1 {
		t.Fatalf("Count(2): got %d, want 1", c.Count(2))
	}
	if c.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", c.Len())
	}
}
