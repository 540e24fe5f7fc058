package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     uint64
	StartTime            time.Time
	AliveCells           int
	GlowingCells         int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a frame that advanced steps generations in duration
func (s *Stats) Update(generation uint64, steps int, alive, glowing int, duration time.Duration) {
	s.TotalGenerations = generation
	s.AliveCells = alive
	s.GlowingCells = glowing
	if duration > 0 {
		s.GenerationsPerSecond = float64(steps) / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(alive)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(alive) * 0.1)
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
