package logic

// Navigator handles selection and viewport for a list of variable-height items
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int   // lines available for the list
	itemHeights    []int // rendered height of each item, gap included
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight int, itemHeights []int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.itemHeights = itemHeights
	n.clamp()
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the index of the first visible item
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetMaxIndex returns the maximum selectable index, -1 for an empty list
func (n *Navigator) GetMaxIndex() int {
	return len(n.itemHeights) - 1
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move applies a navigation direction and returns the new selection and offset
func (n *Navigator) Move(direction string) (int, int) {
	switch direction {
	case "up":
		return n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		return n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		return n.SetSelectedIndex(n.selectedIndex - n.pageSize())
	case "pagedown":
		return n.SetSelectedIndex(n.selectedIndex + n.pageSize())
	case "home":
		return n.SetSelectedIndex(0)
	case "end":
		return n.SetSelectedIndex(n.GetMaxIndex())
	}
	return n.selectedIndex, n.viewportOffset
}

// VisibleCount returns how many items fit starting at the viewport offset
func (n *Navigator) VisibleCount() int {
	return n.fitFrom(n.viewportOffset)
}

// pageSize is the number of items currently on screen, at least one
func (n *Navigator) pageSize() int {
	if c := n.VisibleCount(); c > 1 {
		return c
	}
	return 1
}

// fitFrom counts the items that fit in the viewport starting at start.
// The first item always counts so a tall card is never hidden entirely.
func (n *Navigator) fitFrom(start int) int {
	used := 0
	count := 0
	for i := start; i < len(n.itemHeights); i++ {
		h := n.itemHeights[i]
		if count > 0 && used+h > n.viewportHeight {
			break
		}
		used += h
		count++
	}
	return count
}

func (n *Navigator) ensureSelectedVisible() {
	if len(n.itemHeights) == 0 {
		n.viewportOffset = 0
		return
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
		return
	}

	// Scroll down until the selected item fits
	for n.viewportOffset < n.selectedIndex && n.viewportOffset+n.fitFrom(n.viewportOffset) <= n.selectedIndex {
		n.viewportOffset++
	}
}

func (n *Navigator) clamp() {
	maxIndex := n.GetMaxIndex()
	if n.selectedIndex > maxIndex {
		n.selectedIndex = maxIndex
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	if n.viewportOffset > n.selectedIndex {
		n.viewportOffset = n.selectedIndex
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
