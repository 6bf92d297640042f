package progress

import (
	"context"
	"sync"
	"time"
)

// Defaults for the simulated bar: +5% every half second, parked at 90%
// until the response has been received.
const (
	DefaultTick = 500 * time.Millisecond
	DefaultStep = 5.0
	DefaultCap  = 90.0
)

// Simulator advances a cosmetic percentage on a fixed tick. It measures
// nothing. It is owned by exactly one request and must be stopped when that
// request settles.
type Simulator struct {
	TaskID   string
	Reporter Reporter
	Tick     time.Duration
	Step     float64
	Cap      float64
	Message  string

	mu      sync.Mutex
	percent float64
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSimulator returns a Simulator with the default tick, step and cap.
func NewSimulator(taskID string, rep Reporter, message string) *Simulator {
	if rep == nil {
		rep = Discard{}
	}
	return &Simulator{
		TaskID:   taskID,
		Reporter: rep,
		Tick:     DefaultTick,
		Step:     DefaultStep,
		Cap:      DefaultCap,
		Message:  message,
	}
}

// Start launches the ticker goroutine. It stops on its own when ctx is done.
// Calling Start twice is a no-op.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.emit(0)
	go s.run(ctx)
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.done)
	tick := s.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.mu.Lock()
			if s.percent >= s.Cap {
				s.mu.Unlock()
				continue
			}
			s.percent = min(s.percent+s.Step, s.Cap)
			p := s.percent
			s.mu.Unlock()
			s.emit(p)
		}
	}
}

// Stop cancels the ticker and waits for its goroutine to exit.
// It is safe to call on a Simulator that was never started.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Complete stops the ticker and reports 100%.
func (s *Simulator) Complete() {
	s.Stop()
	s.mu.Lock()
	s.percent = 100
	s.mu.Unlock()
	s.emit(100)
}

// Percent returns the last simulated value.
func (s *Simulator) Percent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.percent
}

func (s *Simulator) emit(p float64) {
	s.Reporter.Update(Update{
		TaskID:  s.TaskID,
		Stage:   StageDownloading,
		Percent: p,
		Message: s.Message,
	})
}
