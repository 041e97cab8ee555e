package slashmenu

// Key is a keyboard input the open palette reacts to
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEnter
	KeyEscape
)

// Menu is the palette state machine. It recomputes the filtered
// command list on every query change and tracks the highlighted row.
// Selection wraps at both ends; enter picks, escape or blur closes.
type Menu struct {
	commands []Command
	filtered []Command
	selected int
	open     bool
}

// NewMenu creates a closed palette over a fixed command registry
func NewMenu(commands []Command) *Menu {
	return &Menu{commands: commands}
}

// Open opens the palette with an initial query
func (m *Menu) Open(query string) {
	m.open = true
	m.UpdateQuery(query)
}

// UpdateQuery refilters the list and resets the highlight to the top.
// Called on each keystroke inside the `/word` pattern.
func (m *Menu) UpdateQuery(query string) {
	if !m.open {
		return
	}
	m.filtered = m.filtered[:0]
	for _, cmd := range m.commands {
		if cmd.Matches(query) {
			m.filtered = append(m.filtered, cmd)
		}
	}
	m.selected = 0
}

// Close closes the palette (escape, blur, or selection)
func (m *Menu) Close() {
	m.open = false
	m.filtered = nil
	m.selected = 0
}

// IsOpen reports whether the palette is visible
func (m *Menu) IsOpen() bool {
	return m.open
}

// Filtered returns the current filtered commands
func (m *Menu) Filtered() []Command {
	return m.filtered
}

// Groups returns the filtered commands grouped by category
func (m *Menu) Groups() []Group {
	return GroupByCategory(m.filtered)
}

// Selected returns the highlighted command, or nil when the filtered
// list is empty or the palette is closed.
func (m *Menu) Selected() *Command {
	if !m.open || len(m.filtered) == 0 {
		return nil
	}
	return &m.filtered[m.selected]
}

// HandleKey feeds one keyboard event into the state machine and
// returns the chosen command when the key was enter on a valid row.
func (m *Menu) HandleKey(key Key) *Command {
	if !m.open {
		return nil
	}

	switch key {
	case KeyUp:
		if len(m.filtered) > 0 {
			m.selected = (m.selected - 1 + len(m.filtered)) % len(m.filtered)
		}
	case KeyDown:
		if len(m.filtered) > 0 {
			m.selected = (m.selected + 1) % len(m.filtered)
		}
	case KeyEnter:
		chosen := m.Selected()
		if chosen != nil {
			picked := *chosen
			m.Close()
			return &picked
		}
	case KeyEscape:
		m.Close()
	}
	return nil
}
