package component

// Direction classifies a terrain contact relative to the touching character
type Direction uint8

const (
	DirNone  Direction = iota
	DirUp              // Terrain above (ceiling)
	DirDown            // Terrain below (ground)
	DirLeft            // Terrain on the left
	DirRight           // Terrain on the right
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}

// ContactComponent is the live count of touching terrain surfaces per direction
// Total counts every terrain contact, including unclassified ones
type ContactComponent struct {
	Up, Down, Left, Right int
	Total                 int
}

// Add registers a begun contact
func (c *ContactComponent) Add(d Direction) {
	c.Total++
	if p := c.slot(d); p != nil {
		*p++
	}
}

// Remove unregisters an ended contact; counters saturate at zero
func (c *ContactComponent) Remove(d Direction) {
	if c.Total > 0 {
		c.Total--
	}
	if p := c.slot(d); p != nil && *p > 0 {
		*p--
	}
}

// Grounded reports at least one floor contact
func (c *ContactComponent) Grounded() bool {
	return c.Down > 0
}

// Reset clears all counters
func (c *ContactComponent) Reset() {
	*c = ContactComponent{}
}

func (c *ContactComponent) slot(d Direction) *int {
	switch d {
	case DirUp:
		return &c.Up
	case DirDown:
		return &c.Down
	case DirLeft:
		return &c.Left
	case DirRight:
		return &c.Right
	}
	return nil
}
