package rowskema

// Presence is the bit flag describing how a column showed up in the current row.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Column is part of the row's shape.
	PresenceWasNull                      // Column is in the shape but the cell is NULL.
)

func (p Presence) Seen() bool    { return p&PresenceSeen != 0 }
func (p Presence) WasNull() bool { return p&PresenceWasNull != 0 }

func (p Presence) String() string {
	switch {
	case !p.Seen():
		return "missing"
	case p.WasNull():
		return "null"
	default:
		return "seen"
	}
}
