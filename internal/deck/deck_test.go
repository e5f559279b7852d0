package deck

import (
	"errors"
	"reflect"
	"testing"
)

func TestAppendBatchTracksLengthAndActiveIndex(t *testing.T) {
	t.Parallel()

	batches := [][]string{
		{"A", "B"},
		nil,
		{"C"},
		{},
		{"D", "E", "F"},
	}
	d := New()
	total := 0
	for i, batch := range batches {
		d.AppendBatch(batch)
		total += len(batch)
		if d.Len() != total {
			t.Fatalf("batch %d: len = %d, want %d", i, d.Len(), total)
		}
		idx, ok := d.Active()
		if !ok || idx != 0 {
			t.Fatalf("batch %d: active = (%d, %v), want (0, true)", i, idx, ok)
		}
	}
	if got := d.Items(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E", "F"}) {
		t.Fatalf("items out of order: %v", got)
	}
}

func TestAppendBatchEmptyOnEmptyDeckKeepsNoActive(t *testing.T) {
	d := New()
	d.AppendBatch(nil)
	if _, ok := d.Active(); ok {
		t.Fatal("empty batch must not activate a card")
	}
	if d.IsAtEnd() {
		t.Fatal("empty deck is never at the end")
	}
}

func TestAppendBatchKeepsActiveAfterMoving(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A", "B", "C"})
	if err := d.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	d.AppendBatch([]string{"D"})
	if idx, _ := d.Active(); idx != 1 {
		t.Fatalf("active = %d, want 1", idx)
	}
}

func TestAdvanceRetreatRoundTrip(t *testing.T) {
	t.Parallel()

	for start := 1; start < 4; start++ {
		d := New()
		d.AppendBatch([]string{"A", "B", "C", "D", "E"})
		for i := 0; i < start; i++ {
			if err := d.Advance(); err != nil {
				t.Fatalf("advance to %d: %v", start, err)
			}
		}
		if err := d.Advance(); err != nil {
			t.Fatalf("advance from %d: %v", start, err)
		}
		if err := d.Retreat(); err != nil {
			t.Fatalf("retreat to %d: %v", start, err)
		}
		if idx, _ := d.Active(); idx != start {
			t.Fatalf("round trip from %d landed on %d", start, idx)
		}
	}
}

func TestAdvanceAndRetreatBoundaries(t *testing.T) {
	empty := New()
	if err := empty.Advance(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("advance on empty = %v, want ErrOutOfRange", err)
	}
	if err := empty.Retreat(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("retreat on empty = %v, want ErrOutOfRange", err)
	}

	d := New()
	d.AppendBatch([]string{"A", "B"})
	if err := d.Retreat(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("retreat at 0 = %v, want ErrOutOfRange", err)
	}
	if err := d.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !d.IsAtEnd() {
		t.Fatal("expected deck to be at the end")
	}
	if err := d.Advance(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("advance at end = %v, want ErrOutOfRange", err)
	}
	if idx, _ := d.Active(); idx != 1 {
		t.Fatalf("failed advance moved the deck to %d", idx)
	}
}

func TestToggleFavoriteTwiceRestoresMembership(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A", "B", "C"})
	if err := d.ToggleFavorite(2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !d.IsFavorite(2) {
		t.Fatal("expected index 2 to be starred")
	}
	if err := d.ToggleFavorite(2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if d.IsFavorite(2) || len(d.Favorites()) != 0 {
		t.Fatalf("double toggle left favorites = %v", d.Favorites())
	}
}

func TestToggleFavoriteInvalidIndex(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A", "B", "C"})
	_ = d.ToggleFavorite(1)
	for _, idx := range []int{-1, 3, 5} {
		if err := d.ToggleFavorite(idx); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("toggle(%d) = %v, want ErrInvalidIndex", idx, err)
		}
	}
	if got := d.Favorites(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("invalid toggles mutated favorites: %v", got)
	}
}

func TestFavoritesSorted(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A", "B", "C", "D"})
	for _, idx := range []int{3, 0, 2} {
		_ = d.ToggleFavorite(idx)
	}
	if got := d.Favorites(); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Fatalf("favorites = %v, want [0 2 3]", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A", "B"})
	_ = d.Advance()
	_ = d.ToggleFavorite(0)

	d.Reset()
	if d.Len() != 0 || d.Items() != nil {
		t.Fatalf("items not cleared: %v", d.Items())
	}
	if _, ok := d.Active(); ok {
		t.Fatal("active index should be cleared")
	}
	if d.Favorites() != nil {
		t.Fatalf("favorites not cleared: %v", d.Favorites())
	}
	if _, ok := d.Current(); ok {
		t.Fatal("current card should be empty")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	d := New()
	d.AppendBatch([]string{"A"})
	items := d.Items()
	items[0] = "mutated"
	if got, _ := d.Current(); got != "A" {
		t.Fatalf("deck shares its backing slice: %q", got)
	}
}
