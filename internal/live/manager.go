package live

// Manager owns the decoration set for one view, rebuilding it per event and
// reporting whether the result actually changed so the host can skip
// redundant redraw work.
type Manager struct {
	scanner *Scanner
	decs    []Decoration
}

// NewManager creates a manager around the given scanner.
func NewManager(scanner *Scanner) *Manager {
	return &Manager{scanner: scanner}
}

// Update rebuilds the decoration set from the snapshot. When the rebuild is
// equivalent to the previous set, the previous set is returned with changed
// false; the skip is an optimization, both sets render identically.
func (m *Manager) Update(v View) (decs []Decoration, changed bool) {
	next := m.scanner.Rebuild(v)
	if Equal(m.decs, next) {
		return m.decs, false
	}
	m.decs = next
	return m.decs, true
}

// Decorations returns the current decoration set.
func (m *Manager) Decorations() []Decoration {
	return m.decs
}

// At returns the decoration covering the given buffer offset, if any.
func (m *Manager) At(offset int) (Decoration, bool) {
	for _, d := range m.decs {
		if d.From <= offset && offset < d.To {
			return d, true
		}
	}
	return Decoration{}, false
}
