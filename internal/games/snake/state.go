package snake

// State is a copy of everything the presentation layer reads after a tick.
type State struct {
	GridSize  int
	Snake     []Cell // Head first
	Food      Cell
	Direction Direction // Direction of travel committed by the last tick
	LastMove  Direction // Zero until the first successful tick of a run
	Score     int
	HighScore int
	Status    Status
	EndReason EndReason
	Speed     int    // Tick interval in milliseconds
	Tick      uint64 // Successful ticks in the current run
	RunSeed   int64
}

// Head returns the first snake cell.
func (s State) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// Len returns the snake length.
func (s State) Len() int {
	return len(s.Snake)
}

// Running reports whether the run is still in progress.
func (s State) Running() bool {
	return s.Status == StatusRunning
}
