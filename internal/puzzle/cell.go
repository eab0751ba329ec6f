// Package puzzle provides the rule engine for chromagate: level text parsing,
// move legality, portals, the color switch and level progression.
// This package is UI-agnostic and has no external dependencies.
package puzzle

// CellKind is the semantic type of one grid location.
type CellKind uint8

const (
	CellPathway CellKind = iota
	CellStart
	CellEnd
	CellWall
	CellRedZone
	CellBlueZone
	CellSwitch
	CellPortalA
	CellPortalB
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellPathway:
		return "pathway"
	case CellStart:
		return "start"
	case CellEnd:
		return "end"
	case CellWall:
		return "wall"
	case CellRedZone:
		return "redZone"
	case CellBlueZone:
		return "blueZone"
	case CellSwitch:
		return "colorSwitch"
	case CellPortalA:
		return "portalA"
	case CellPortalB:
		return "portalB"
	default:
		return "unknown"
	}
}

// Symbol returns the canonical level-file character for the kind.
func (k CellKind) Symbol() rune {
	switch k {
	case CellStart:
		return 'S'
	case CellEnd:
		return 'E'
	case CellWall:
		return '#'
	case CellRedZone:
		return 'R'
	case CellBlueZone:
		return 'B'
	case CellSwitch:
		return 'T'
	case CellPortalA:
		return '@'
	case CellPortalB:
		return 'O'
	default:
		return '.'
	}
}

// IsPortal reports whether the kind teleports the player.
func (k CellKind) IsPortal() bool {
	return k == CellPortalA || k == CellPortalB
}

// KindForSymbol maps a level-file character to its cell kind.
// The second result is false for characters outside the symbol table,
// which still map to CellPathway.
func KindForSymbol(r rune) (CellKind, bool) {
	switch r {
	case 'S':
		return CellStart, true
	case 'E':
		return CellEnd, true
	case '#':
		return CellWall, true
	case 'R':
		return CellRedZone, true
	case 'B':
		return CellBlueZone, true
	case 'T':
		return CellSwitch, true
	case '@':
		return CellPortalA, true
	case 'O':
		return CellPortalB, true
	case '.':
		return CellPathway, true
	default:
		return CellPathway, false
	}
}

// AllKinds returns every cell kind in declaration order.
func AllKinds() []CellKind {
	return []CellKind{
		CellPathway, CellStart, CellEnd, CellWall, CellRedZone,
		CellBlueZone, CellSwitch, CellPortalA, CellPortalB,
	}
}
