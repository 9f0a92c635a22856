package pagination

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{count: 0, size: 6, want: 0},
		{count: 1, size: 6, want: 1},
		{count: 6, size: 6, want: 1},
		{count: 7, size: 6, want: 2},
		{count: 10, size: 6, want: 2},
		{count: 13, size: 6, want: 3},
		{count: 5, size: 0, want: 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}

func TestInRange(t *testing.T) {
	if !InRange(1, 0) {
		t.Fatal("page 1 of an empty result should be addressable")
	}
	if InRange(2, 0) {
		t.Fatal("page 2 of an empty result should be rejected")
	}
	if InRange(0, 3) || InRange(-1, 3) {
		t.Fatal("non-positive pages should be rejected")
	}
	if !InRange(3, 3) {
		t.Fatal("last page should be addressable")
	}
	if InRange(99, 2) {
		t.Fatal("page past the end should be rejected")
	}
}

func TestBounds(t *testing.T) {
	if start, end := Bounds(1, 6, 10); start != 0 || end != 6 {
		t.Fatalf("page 1 bounds = [%d,%d)", start, end)
	}
	if start, end := Bounds(2, 6, 10); start != 6 || end != 10 {
		t.Fatalf("page 2 bounds = [%d,%d)", start, end)
	}
	if start, end := Bounds(3, 6, 10); start != 10 || end != 10 {
		t.Fatalf("page 3 bounds = [%d,%d)", start, end)
	}
	if start, end := Bounds(1, 6, 0); start != 0 || end != 0 {
		t.Fatalf("empty bounds = [%d,%d)", start, end)
	}
}

func TestNormalizePageSize(t *testing.T) {
	if got := NormalizePageSize(0); got != DefaultPageSize {
		t.Fatalf("expected default, got %d", got)
	}
	if got := NormalizePageSize(500); got != MaxPageSize {
		t.Fatalf("expected max, got %d", got)
	}
	if got := NormalizePageSize(12); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}
