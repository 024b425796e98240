package host

import "fmt"

const defaultMaxPasses = 100

type scheduler struct {
	// incremented each time a flush completes
	clock int

	maxPasses int

	scheduled bool
	running   bool
}

func newScheduler() *scheduler {
	return &scheduler{
		maxPasses: defaultMaxPasses,
	}
}

func (s *scheduler) Schedule() {
	s.scheduled = true
}

// Run calls pass until it reports no work, unless a run is already in progress:
// the running loop picks up anything scheduled meanwhile.
func (s *scheduler) Run(pass func() bool) error {
	if s.running || !s.scheduled {
		return nil
	}

	s.scheduled = false
	s.running = true
	defer func() { s.running = false }()

	for passes := 0; pass(); passes++ {
		if s.maxPasses > 0 && passes >= s.maxPasses {
			return fmt.Errorf("%w (limit %d)", ErrRenderLoop, s.maxPasses)
		}
	}

	s.scheduled = false
	s.clock++

	return nil
}

func (s *scheduler) Time() int {
	return s.clock
}
