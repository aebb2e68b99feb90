package gallery

// Key names understood by HandleKey. They match KeyboardEvent.key values.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
)

// NoSelection is the index reported when the modal is closed.
const NoSelection = -1

// Navigator tracks which item of a fixed list is open in the modal viewer.
// The selected index is either absent or within [0, Len()).
type Navigator struct {
	items    []Item
	selected int
}

// NewNavigator returns a navigator over items with nothing selected.
func NewNavigator(items []Item) *Navigator {
	return &Navigator{items: items, selected: NoSelection}
}

// Restore returns a navigator with the given index selected. Indexes outside
// the list leave the modal closed.
func Restore(items []Item, index int) *Navigator {
	n := NewNavigator(items)
	if index >= 0 && index < len(items) {
		n.selected = index
	}
	return n
}

// Len returns the number of items.
func (n *Navigator) Len() int { return len(n.items) }

// Items returns the underlying list.
func (n *Navigator) Items() []Item { return n.items }

// Index returns the selected index and whether anything is selected.
func (n *Navigator) Index() (int, bool) {
	if n.selected == NoSelection {
		return NoSelection, false
	}
	return n.selected, true
}

// Selected returns the open item.
func (n *Navigator) Selected() (Item, bool) {
	if n.selected == NoSelection {
		return Item{}, false
	}
	return n.items[n.selected], true
}

// Open selects the item with the given id. It returns false when no item has
// that id, leaving the selection unchanged.
func (n *Navigator) Open(id string) bool {
	for i, it := range n.items {
		if it.ID == id {
			n.selected = i
			return true
		}
	}
	return false
}

// Next moves to the following item, wrapping from the last to the first.
func (n *Navigator) Next() {
	if n.selected == NoSelection || len(n.items) == 0 {
		return
	}
	n.selected = (n.selected + 1) % len(n.items)
}

// Previous moves to the preceding item, wrapping from the first to the last.
func (n *Navigator) Previous() {
	if n.selected == NoSelection || len(n.items) == 0 {
		return
	}
	n.selected = (n.selected - 1 + len(n.items)) % len(n.items)
}

// Close clears the selection.
func (n *Navigator) Close() {
	n.selected = NoSelection
}

// HandleKey applies a keyboard binding. Bindings are only active while an
// item is open; it reports whether the key was consumed.
func (n *Navigator) HandleKey(key string) bool {
	if n.selected == NoSelection {
		return false
	}
	switch key {
	case KeyLeft:
		n.Previous()
	case KeyRight:
		n.Next()
	case KeyEscape:
		n.Close()
	default:
		return false
	}
	return true
}
