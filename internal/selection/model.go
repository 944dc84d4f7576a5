package selection

import "reviewdesk/internal/types"

// SetAll selects or clears every rendered item.
func (l *List) SetAll(checked bool) {
	if l == nil {
		return
	}
	l.selected = make(map[types.ItemID]struct{}, len(l.items))
	if !checked {
		return
	}
	for _, item := range l.items {
		l.selected[item.ID] = struct{}{}
	}
}

// Toggle flips the selection of one rendered item. Unknown ids are ignored.
func (l *List) Toggle(id types.ItemID) bool {
	if !l.Contains(id) {
		return false
	}
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
	} else {
		l.selected[id] = struct{}{}
	}
	return true
}

func (l *List) IsSelected(id types.ItemID) bool {
	if l == nil {
		return false
	}
	_, ok := l.selected[id]
	return ok
}

func (l *List) SelectedCount() int {
	if l == nil {
		return 0
	}
	return len(l.selected)
}

// SelectedIDs returns the selected ids in render order.
func (l *List) SelectedIDs() []types.ItemID {
	if l == nil || len(l.selected) == 0 {
		return nil
	}
	out := make([]types.ItemID, 0, len(l.selected))
	for _, item := range l.items {
		if _, ok := l.selected[item.ID]; ok {
			out = append(out, item.ID)
		}
	}
	return out
}
