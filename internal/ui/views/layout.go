package views

// Rect is a screen rectangle in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region ties a rectangle to the id of the element drawn there
type Region struct {
	Rect
	NodeID string
}

// Layout records where elements ended up on the last render. Regions added
// later are drawn on top of earlier ones.
type Layout struct {
	Regions []Region
}

func (l *Layout) add(id string, r Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	l.Regions = append(l.Regions, Region{Rect: r, NodeID: id})
}

// Hit returns the id of the topmost element under (x, y)
func (l Layout) Hit(x, y int) (string, bool) {
	for i := len(l.Regions) - 1; i >= 0; i-- {
		if l.Regions[i].Contains(x, y) {
			return l.Regions[i].NodeID, true
		}
	}
	return "", false
}

// Find returns the region recorded for id
func (l Layout) Find(id string) (Rect, bool) {
	for i := len(l.Regions) - 1; i >= 0; i-- {
		if l.Regions[i].NodeID == id {
			return l.Regions[i].Rect, true
		}
	}
	return Rect{}, false
}
