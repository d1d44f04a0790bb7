package chance

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/faceoff/internal/chance Source

// Source is the randomness used for coin flips and candidate draws
type Source interface {
	// Flip returns true with the given probability
	Flip(probability float64) bool

	// Intn returns a uniformly distributed index in [0, n)
	Intn(n int) int
}

// Roller is a Source backed by a seedable math/rand generator.
// It is safe for concurrent use.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Flip returns true with the given probability
func (r *Roller) Flip(probability float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Float64() < probability
}

// Intn returns a uniformly distributed index in [0, n). n < 1 yields 0.
func (r *Roller) Intn(n int) int {
	if n < 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}
