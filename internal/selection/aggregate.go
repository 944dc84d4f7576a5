package selection

type HeaderState int

const (
	HeaderUnchecked HeaderState = iota
	HeaderIndeterminate
	HeaderChecked
)

func (s HeaderState) Glyph() string {
	switch s {
	case HeaderChecked:
		return "[x]"
	case HeaderIndeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// Aggregate is derived from a List on every render and never stored.
type Aggregate struct {
	Rendered       int
	Selected       int
	AllSelected    bool
	AnySelected    bool
	Indeterminate  bool
	BulkBarVisible bool
	Header         HeaderState
}

func Derive(l *List) Aggregate {
	rendered := l.Len()
	selected := l.SelectedCount()
	agg := Aggregate{
		Rendered:    rendered,
		Selected:    selected,
		AllSelected: rendered > 0 && selected == rendered,
		AnySelected: selected > 0,
	}
	agg.Indeterminate = agg.AnySelected && !agg.AllSelected
	agg.BulkBarVisible = agg.AnySelected
	switch {
	case agg.AllSelected:
		agg.Header = HeaderChecked
	case agg.Indeterminate:
		agg.Header = HeaderIndeterminate
	default:
		agg.Header = HeaderUnchecked
	}
	return agg
}

// ToggleAllTarget is the value the header control applies when activated:
// a checked header clears, anything else selects all.
func (a Aggregate) ToggleAllTarget() bool {
	return !a.AllSelected
}
