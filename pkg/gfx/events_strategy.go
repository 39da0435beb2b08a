package gfx

// EventsConsumerStrategy decides how many events one frame takes from the
// input source. poll returns false once the queue is empty; handle returns
// false to stop consuming (the driver does that after a quit request).
type EventsConsumerStrategy interface {
	Consume(poll func() (Event, bool), handle func(Event) bool) int
}

// PollOnceStrategy takes at most one event per frame. Further events of a
// burst wait for the following frames.
type PollOnceStrategy struct{}

func (PollOnceStrategy) Consume(poll func() (Event, bool), handle func(Event) bool) int {
	event, ok := poll()
	if !ok {
		return 0
	}
	handle(event)
	return 1
}

// DrainMaxStrategy takes up to Max events per frame.
type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll func() (Event, bool), handle func(Event) bool) int {
	max := s.Max
	if max <= 0 {
		max = 1
	}
	count := 0
	for count < max {
		event, ok := poll()
		if !ok {
			return count
		}
		count++
		if !handle(event) {
			return count
		}
	}
	return count
}

// PollOnce is the default strategy.
func PollOnce() EventsConsumerStrategy {
	return PollOnceStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	if max <= 1 {
		return PollOnceStrategy{}
	}
	return DrainMaxStrategy{Max: max}
}
