package snake

// Snapshot captures the compact game state for determinism testing and replay checks.
type Snapshot struct {
	Tick      uint64
	Score     int
	HighScore int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	Speed     int
	Status    Status
	EndReason EndReason
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return e.State().Snapshot()
}

// Snapshot reduces a full state to its comparable summary.
func (s State) Snapshot() Snapshot {
	head := s.Head()
	return Snapshot{
		Tick:      s.Tick,
		Score:     s.Score,
		HighScore: s.HighScore,
		SnakeLen:  len(s.Snake),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       s.Direction,
		FoodX:     s.Food.X,
		FoodY:     s.Food.Y,
		Speed:     s.Speed,
		Status:    s.Status,
		EndReason: s.EndReason,
	}
}
