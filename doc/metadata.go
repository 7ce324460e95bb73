package doc

// Metadata holds the optional drawing attributes of a path or the defaults
// of a layer or document. Unset fields fall through to the enclosing scope
// (path, then layer, then document, then built-in defaults).
//
// The zero value has every field unset. Storage is shared on Clone and
// detached on the first mutation, so cloning a path is cheap regardless of
// how much metadata it carries.
type Metadata struct {
	p     *metaProps
	owned bool
}

type metaProps struct {
	color       *Color
	strokeWidth *float64
	name        *string
	visible     *bool
}

// Clone returns a metadata sharing storage with m. Both values detach on
// their next mutation, so writes on one side are never seen by the other.
func (m *Metadata) Clone() Metadata {
	if m.p == nil {
		return Metadata{}
	}
	m.owned = false
	return Metadata{p: m.p}
}

// detach makes m the sole owner of its storage.
func (m *Metadata) detach() {
	switch {
	case m.p == nil:
		m.p = new(metaProps)
	case !m.owned:
		cp := *m.p
		m.p = &cp
	}
	m.owned = true
}

func (m *Metadata) Color() (Color, bool) {
	if m.p == nil || m.p.color == nil {
		return Color{}, false
	}
	return *m.p.color, true
}

func (m *Metadata) SetColor(c Color) {
	m.detach()
	m.p.color = &c
}

func (m *Metadata) ClearColor() {
	if _, ok := m.Color(); !ok {
		return
	}
	m.detach()
	m.p.color = nil
}

func (m *Metadata) StrokeWidth() (float64, bool) {
	if m.p == nil || m.p.strokeWidth == nil {
		return 0, false
	}
	return *m.p.strokeWidth, true
}

func (m *Metadata) SetStrokeWidth(w float64) {
	m.detach()
	m.p.strokeWidth = &w
}

func (m *Metadata) ClearStrokeWidth() {
	if _, ok := m.StrokeWidth(); !ok {
		return
	}
	m.detach()
	m.p.strokeWidth = nil
}

func (m *Metadata) Name() (string, bool) {
	if m.p == nil || m.p.name == nil {
		return "", false
	}
	return *m.p.name, true
}

func (m *Metadata) SetName(s string) {
	m.detach()
	m.p.name = &s
}

func (m *Metadata) Visible() (bool, bool) {
	if m.p == nil || m.p.visible == nil {
		return false, false
	}
	return *m.p.visible, true
}

func (m *Metadata) SetVisible(v bool) {
	m.detach()
	m.p.visible = &v
}

func (m *Metadata) ClearVisible() {
	if _, ok := m.Visible(); !ok {
		return
	}
	m.detach()
	m.p.visible = nil
}

// IsEmpty reports whether no field is set.
func (m *Metadata) IsEmpty() bool {
	if m.p == nil {
		return true
	}
	return m.p.color == nil && m.p.strokeWidth == nil && m.p.name == nil && m.p.visible == nil
}

// Style is a fully resolved set of drawing attributes.
type Style struct {
	Color       Color
	StrokeWidth float64
	Visible     bool
}

// DefaultStyle is the built-in fallback: black, 1.0 wide, visible.
func DefaultStyle() Style {
	return Style{Color: Black, StrokeWidth: 1.0, Visible: true}
}

// resolveStyle folds the metadata chain, nearest scope first.
func resolveStyle(chain ...*Metadata) Style {
	s := DefaultStyle()
	colorSet, widthSet, visSet := false, false, false
	for _, m := range chain {
		if m == nil {
			continue
		}
		if c, ok := m.Color(); ok && !colorSet {
			s.Color, colorSet = c, true
		}
		if w, ok := m.StrokeWidth(); ok && !widthSet {
			s.StrokeWidth, widthSet = w, true
		}
		if v, ok := m.Visible(); ok && !visSet {
			s.Visible, visSet = v, true
		}
	}
	return s
}
