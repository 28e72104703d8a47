package selection

// Marquee tracks a pointer-drawn selection rectangle. The primary button
// goes down on empty space, the pointer moves, and every row whose vertical
// band intersects the rectangle joins the selection. Horizontal extent is
// deliberately ignored: rows are full width, so a box anywhere in a row's
// vertical band selects it.
//
// A small movement threshold has to be crossed before the marquee engages so
// a plain click is not misread as a zero-size drag.

// Point is a pointer position in the row coordinate space.
type Point struct {
	X int
	Y int
}

// RowBounds is the vertical extent of one rendered row.
type RowBounds struct {
	ID     string
	Top    int
	Bottom int
}

// EngageThreshold is the pointer travel, in either axis, required before a
// press turns into a marquee.
const EngageThreshold = 5

type Marquee struct {
	origin  Point
	current Point
	pressed bool
	engaged bool
}

// Begin records the press point. The marquee is not yet engaged.
func (m *Marquee) Begin(p Point) {
	m.origin = p
	m.current = p
	m.pressed = true
	m.engaged = false
}

// Update tracks pointer movement and reports whether the marquee is engaged.
// Once engaged it stays engaged until End.
func (m *Marquee) Update(p Point) bool {
	if !m.pressed {
		return false
	}
	m.current = p
	if !m.engaged {
		dx := abs(p.X - m.origin.X)
		dy := abs(p.Y - m.origin.Y)
		if dx >= EngageThreshold || dy >= EngageThreshold {
			m.engaged = true
		}
	}
	return m.engaged
}

// Active reports whether an engaged marquee is in progress.
func (m *Marquee) Active() bool {
	return m.pressed && m.engaged
}

// End cancels tracking, on pointer release or when the view goes away.
func (m *Marquee) End() {
	m.pressed = false
	m.engaged = false
}

// Band returns the vertical extent of the rectangle.
func (m *Marquee) Band() (top, bottom int) {
	top, bottom = m.origin.Y, m.current.Y
	if top > bottom {
		top, bottom = bottom, top
	}
	return top, bottom
}

// Hits returns the ids of rows whose vertical extent overlaps the marquee
// band. Pure vertical-overlap test; X is never consulted.
func (m *Marquee) Hits(rows []RowBounds) []string {
	if !m.Active() {
		return nil
	}
	top, bottom := m.Band()
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Bottom < top || r.Top > bottom {
			continue
		}
		out = append(out, r.ID)
	}
	return out
}

// EdgeScroll computes the per-frame scroll delta while a marquee drags near
// the viewport edge. The rate is constant and frame-driven, so scrolling
// continues even when no new pointer events arrive. Returns 0 away from the
// edges.
func EdgeScroll(pointerY, viewTop, viewBottom, margin, rate int) int {
	if rate <= 0 || viewBottom <= viewTop {
		return 0
	}
	if pointerY <= viewTop+margin {
		return -rate
	}
	if pointerY >= viewBottom-margin {
		return rate
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
