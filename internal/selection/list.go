// Package selection tracks the rendered items of one list and the set of
// those items the operator has selected.
package selection

import "reviewdesk/internal/types"

type Item struct {
	ID      types.ItemID
	Label   string
	Enabled bool
	Flagged bool
}

// List is the rendered list plus its selection overlay. Membership is owned
// by the list; the selection is always a subset of the rendered ids.
// A List is not safe for concurrent use; it belongs to the UI loop.
type List struct {
	items    []Item
	index    map[types.ItemID]int
	selected map[types.ItemID]struct{}
}

func NewList(items []Item) *List {
	l := &List{}
	l.Replace(items)
	return l
}

// Replace swaps in a freshly rendered list and rebuilds the selection
// overlay empty.
func (l *List) Replace(items []Item) {
	l.items = make([]Item, 0, len(items))
	l.index = make(map[types.ItemID]int, len(items))
	l.selected = map[types.ItemID]struct{}{}
	for _, item := range items {
		if _, dup := l.index[item.ID]; dup || item.ID == "" {
			continue
		}
		l.index[item.ID] = len(l.items)
		l.items = append(l.items, item)
	}
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

func (l *List) Items() []Item {
	if l == nil {
		return nil
	}
	return append([]Item(nil), l.items...)
}

func (l *List) At(i int) (Item, bool) {
	if l == nil || i < 0 || i >= len(l.items) {
		return Item{}, false
	}
	return l.items[i], true
}

func (l *List) Item(id types.ItemID) (Item, bool) {
	if l == nil {
		return Item{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Item{}, false
	}
	return l.items[i], true
}

func (l *List) Contains(id types.ItemID) bool {
	_, ok := l.Item(id)
	return ok
}

// Append adds an item at the end. Returns false when the id is already rendered.
func (l *List) Append(item Item) bool {
	if item.ID == "" || l.Contains(item.ID) {
		return false
	}
	l.index[item.ID] = len(l.items)
	l.items = append(l.items, item)
	return true
}

// Remove drops the item and its selection flag. Removing an id that is not
// rendered is a no-op.
func (l *List) Remove(id types.ItemID) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, id)
	delete(l.selected, id)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j].ID] = j
	}
	return true
}

// SetEnabled stores a new toggle value and returns the previous one.
func (l *List) SetEnabled(id types.ItemID, enabled bool) (prior bool, ok bool) {
	i, ok := l.index[id]
	if !ok {
		return false, false
	}
	prior = l.items[i].Enabled
	l.items[i].Enabled = enabled
	return prior, true
}

// SetFlagged patches the flag of every rendered id in ids and returns how
// many items changed.
func (l *List) SetFlagged(ids []types.ItemID, flagged bool) int {
	changed := 0
	for _, id := range ids {
		i, ok := l.index[id]
		if !ok || l.items[i].Flagged == flagged {
			continue
		}
		l.items[i].Flagged = flagged
		changed++
	}
	return changed
}
