package snake

// Cell is a grid coordinate. The origin is the top-left corner and y grows downward.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by a direction, without wrapping.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

// The four directions a snake can travel in.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsUnit reports whether d is one of Right, Left, Down or Up.
func (d Direction) IsUnit() bool {
	return (d.DX == 0) != (d.DY == 0) &&
		d.DX >= -1 && d.DX <= 1 && d.DY >= -1 && d.DY <= 1
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Letter returns the single-byte code used in move logs.
func (d Direction) Letter() byte {
	switch d {
	case Up:
		return 'U'
	case Down:
		return 'D'
	case Left:
		return 'L'
	case Right:
		return 'R'
	default:
		return '?'
	}
}

// DirectionFromLetter decodes a move log byte.
func DirectionFromLetter(b byte) (Direction, bool) {
	switch b {
	case 'U':
		return Up, true
	case 'D':
		return Down, true
	case 'L':
		return Left, true
	case 'R':
		return Right, true
	default:
		return Direction{}, false
	}
}

// ParseDirection decodes a direction name as written in config files.
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Direction{}, false
	}
}

// Status is the engine's lifecycle state.
type Status int

const (
	StatusRunning Status = iota
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// EndReason records why a run reached StatusOver.
type EndReason string

const (
	EndNone          EndReason = "none"
	EndSelfCollision EndReason = "self_collision"
	EndBoardFull     EndReason = "board_full" // No free cell left to place food on
)
