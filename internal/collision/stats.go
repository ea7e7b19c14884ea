package collision

// Stats accumulates PhaseData across frames for the HUD and the bench command.
type Stats struct {
	Frames          int
	TotalTests      int
	TotalCollisions int
	MinTests        int
	MaxTests        int
	Last            PhaseData
}

// Record adds one pass to the totals.
func (s *Stats) Record(d PhaseData) {
	if s.Frames == 0 || d.Tests < s.MinTests {
		s.MinTests = d.Tests
	}
	if d.Tests > s.MaxTests {
		s.MaxTests = d.Tests
	}
	s.Frames++
	s.TotalTests += d.Tests
	s.TotalCollisions += d.Collisions
	s.Last = d
}

// Reset forgets every recorded pass.
func (s *Stats) Reset() {
	*s = Stats{}
}

// AvgTests returns the mean number of tests per recorded pass.
func (s *Stats) AvgTests() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.TotalTests) / float64(s.Frames)
}

// AvgCollisions returns the mean number of collisions per recorded pass.
func (s *Stats) AvgCollisions() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.TotalCollisions) / float64(s.Frames)
}
