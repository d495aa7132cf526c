package label

import (
	"testing"
)

func TestRemap(t *testing.T) {
	data := []byte("0 0.5 0.5 0.2 0.2\n1 0.1 0.1 0.9 0.1 0.5 0.9\n2 0.3 0.3 0.1 0.1\n9 0.2 0.2 0.1 0.1\n")
	mapping := map[int]int{0: 10, 1: 11}
	drop := map[int]bool{2: true}

	out, stats := Remap(data, mapping, drop)

	want := "10 0.5 0.5 0.2 0.2\n11 0.1 0.1 0.9 0.1 0.5 0.9\n9 0.2 0.2 0.1 0.1\n"
	if string(out) != want {
		t.Errorf("output mismatch:\ngot  %q\nwant %q", out, want)
	}
	if stats.Remapped != 2 || stats.Dropped != 1 || stats.Kept != 1 {
		t.Errorf("stats = %+v, want {Remapped:2 Dropped:1 Kept:1}", stats)
	}
}

func TestRemap_IdempotentOnNormalised(t *testing.T) {
	// Identity mapping over already-normalised IDs must be a no-op.
	data := []byte("10 0.5 0.5 0.2 0.2\n11 0.1 0.1 0.9 0.1 0.5 0.9\n")
	mapping := map[int]int{10: 10, 11: 11}

	out, stats := Remap(data, mapping, nil)

	if string(out) != string(data) {
		t.Errorf("rerun changed data:\ngot  %q\nwant %q", out, data)
	}
	if stats.Dropped != 0 {
		t.Errorf("expected nothing dropped, got %d", stats.Dropped)
	}
}

func TestRemap_KeepsUnparseableLines(t *testing.T) {
	data := []byte("garbage line\n0 0.5 0.5 0.2 0.2\n")

	out, stats := Remap(data, map[int]int{0: 1}, nil)

	want := "garbage line\n1 0.5 0.5 0.2 0.2\n"
	if string(out) != want {
		t.Errorf("output mismatch:\ngot  %q\nwant %q", out, want)
	}
	if stats.Kept != 1 {
		t.Errorf("Kept = %d, want 1", stats.Kept)
	}
}
