package sim

import "time"

const statsWindow = time.Second

// Stats is the frame-rate overlay: Begin and End bracket each frame.
type Stats struct {
	now       func() time.Time
	begin     time.Time
	stamps    []time.Time
	lastFrame time.Duration
	frames    int
}

func NewStats() *Stats {
	return &Stats{now: time.Now, stamps: make([]time.Time, 0, 128)}
}

func (s *Stats) Begin() { s.begin = s.now() }

func (s *Stats) End() {
	now := s.now()
	if !s.begin.IsZero() {
		s.lastFrame = now.Sub(s.begin)
	}
	s.frames++
	s.stamps = append(s.stamps, now)

	cutoff := now.Add(-statsWindow)
	drop := 0
	for drop < len(s.stamps) && s.stamps[drop].Before(cutoff) {
		drop++
	}
	s.stamps = s.stamps[drop:]
}

// FPS is the frame rate over the trailing one-second window.
func (s *Stats) FPS() float64 {
	if len(s.stamps) < 2 {
		return 0
	}
	span := s.stamps[len(s.stamps)-1].Sub(s.stamps[0])
	if span <= 0 {
		return 0
	}
	return float64(len(s.stamps)-1) / span.Seconds()
}

func (s *Stats) FrameTime() time.Duration { return s.lastFrame }
func (s *Stats) Frames() int              { return s.frames }
