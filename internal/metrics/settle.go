package metrics

// Settle counts the frames the grid spent with a mean intensity above the
// tolerance, i.e. how long a trail stays visible.
type Settle struct {
	name      string
	tolerance float64
	active    int
	samples   int
}

func NewSettle(tolerance float64) *Settle {
	return &Settle{
		name:      "active_frames",
		tolerance: tolerance,
	}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(f Frame) {
	s.samples++
	if f.Mean > s.tolerance {
		s.active++
	}
}

func (s *Settle) Value() float64 { return float64(s.active) }

// Ratio is the share of observed frames that were active.
func (s *Settle) Ratio() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.active) / float64(s.samples)
}

func (s *Settle) Reset() {
	s.active = 0
	s.samples = 0
}
