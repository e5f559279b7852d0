// Package deck owns the idea deck shown as cards and the controller that
// decides when browsing needs another batch from the fetcher.
package deck

import "sort"

// Deck holds the ideas fetched for one topic, the card currently shown and
// the cards the user starred. Items are only ever appended, so favorite
// indices stay valid until Reset.
type Deck struct {
	items     []string
	active    int
	favorites map[int]struct{}
}

// New returns an empty deck.
func New() *Deck {
	return &Deck{active: -1, favorites: map[int]struct{}{}}
}

// AppendBatch appends ideas in the order received. The first non-empty batch
// activates the first card; later batches leave the active card alone.
func (d *Deck) AppendBatch(ideas []string) {
	if len(ideas) == 0 {
		return
	}
	d.items = append(d.items, ideas...)
	if d.active < 0 {
		d.active = 0
	}
}

// Advance moves to the next card.
func (d *Deck) Advance() error {
	if d.active < 0 || d.active >= len(d.items)-1 {
		return ErrOutOfRange
	}
	d.active++
	return nil
}

// Retreat moves to the previous card.
func (d *Deck) Retreat() error {
	if d.active <= 0 {
		return ErrOutOfRange
	}
	d.active--
	return nil
}

// ToggleFavorite flips the star on the card at index.
func (d *Deck) ToggleFavorite(index int) error {
	if index < 0 || index >= len(d.items) {
		return ErrInvalidIndex
	}
	if _, ok := d.favorites[index]; ok {
		delete(d.favorites, index)
		return nil
	}
	d.favorites[index] = struct{}{}
	return nil
}

// IsAtEnd reports whether the last card is active. An empty deck is never at
// the end.
func (d *Deck) IsAtEnd() bool {
	return len(d.items) > 0 && d.active == len(d.items)-1
}

// Reset drops every idea and favorite.
func (d *Deck) Reset() {
	d.items = nil
	d.active = -1
	d.favorites = map[int]struct{}{}
}

func (d *Deck) Len() int {
	return len(d.items)
}

// Active returns the active index; ok is false for an empty deck.
func (d *Deck) Active() (int, bool) {
	if d.active < 0 {
		return 0, false
	}
	return d.active, true
}

// Current returns the idea on the active card.
func (d *Deck) Current() (string, bool) {
	if d.active < 0 {
		return "", false
	}
	return d.items[d.active], true
}

func (d *Deck) IsFavorite(index int) bool {
	_, ok := d.favorites[index]
	return ok
}

// Items returns a copy of the ideas in order.
func (d *Deck) Items() []string {
	if len(d.items) == 0 {
		return nil
	}
	return append([]string(nil), d.items...)
}

// Favorites returns the starred indices in ascending order.
func (d *Deck) Favorites() []int {
	if len(d.favorites) == 0 {
		return nil
	}
	out := make([]int, 0, len(d.favorites))
	for idx := range d.favorites {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
