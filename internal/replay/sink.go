package replay

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// RunSaver persists finished runs.
type RunSaver interface {
	SaveRun(run Run) error
}

// Sink receives finished games, checks that they replay, and saves them.
// Failures are logged rather than returned so a broken database never
// interrupts play.
type Sink struct {
	saver  RunSaver
	logger *log.Logger
	now    func() time.Time

	mu    sync.Mutex
	last  Run
	saved int
}

var _ snake.RunSink = (*Sink)(nil)

// NewSink creates a sink writing to saver. A nil saver only logs.
func NewSink(saver RunSaver, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &Sink{
		saver:  saver,
		logger: logger.WithPrefix("replay"),
		now:    time.Now,
	}
}

// RunFinished implements snake.RunSink.
func (s *Sink) RunFinished(rec snake.RunRecord) {
	run, err := FromRecord(rec, s.now())
	if err != nil {
		s.logger.Error("cannot record run", "game", rec.GameID, "error", err)
		return
	}

	logger := s.logger.With("run", run.ID, "game", run.GameID, "score", run.Score)
	if err := Verify(run); err != nil {
		logger.Warn("run does not replay", "error", err)
	}

	s.mu.Lock()
	s.last = run
	s.mu.Unlock()

	if s.saver == nil {
		logger.Debug("run finished", "ticks", run.Ticks, "end", run.EndReason)
		return
	}
	if err := s.saver.SaveRun(run); err != nil {
		logger.Error("cannot save run", "error", err)
		return
	}

	s.mu.Lock()
	s.saved++
	s.mu.Unlock()
	logger.Info("run saved", "ticks", run.Ticks, "end", run.EndReason)
}

// Last returns the most recent finished run.
func (s *Sink) Last() (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last.ID != ""
}

// Saved returns how many runs reached the saver.
func (s *Sink) Saved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
