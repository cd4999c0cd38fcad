package service

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Source produces the availability figure a get_disponibility call returns.
type Source interface {
	Availability() float64
}

// NormalSource draws min(|N(Mu, Sigma)|, 1).
type NormalSource struct {
	Mu    float64
	Sigma float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewNormalSource(mean, sigma float64, seed int64) *NormalSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &NormalSource{Mu: mean, Sigma: sigma, rng: rand.New(rand.NewSource(seed))}
}

func (s *NormalSource) Availability() float64 {
	s.mu.Lock()
	n := s.rng.NormFloat64()
	s.mu.Unlock()
	return math.Min(math.Abs(n*s.Sigma+s.Mu), 1.0)
}

// Fixed always returns the same figure.
type Fixed float64

func (f Fixed) Availability() float64 { return float64(f) }
