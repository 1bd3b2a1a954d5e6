package nullmodel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Names of length models accepted by NewLengthModel.
const (
	PoissonModel = "poisson"
	FixedModel   = "fixed"
	UniformModel = "uniform"
)

// LengthModel draws lengths of random windows. Every model has mean equal to
// the configured window size.
type LengthModel interface {
	// Length draws one window length (>= 1) from rng.
	Length(rng *rand.Rand) int

	// Name returns the model name.
	Name() string
}

// NewLengthModel returns a length model by name with the given mean.
func NewLengthModel(name string, mean int) (LengthModel, error) {
	if mean < 1 {
		return nil, fmt.Errorf("mean window length must be positive, got %d", mean)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PoissonModel, "":
		return Poisson{Mean: mean}, nil
	case FixedModel:
		return Fixed{Size: mean}, nil
	case UniformModel:
		return Uniform{Mean: mean}, nil
	default:
		return nil, fmt.Errorf("unknown length model '%s'", name)
	}
}

// Poisson draws lengths from a Poisson distribution with lambda equal to
// Mean. Zero draws become 1.
type Poisson struct {
	Mean int
}

func (p Poisson) Length(rng *rand.Rand) int {
	d := distuv.Poisson{Lambda: float64(p.Mean), Src: rng}
	return max(1, int(math.Round(d.Rand())))
}

func (p Poisson) Name() string { return PoissonModel }

// Fixed always returns Size.
type Fixed struct {
	Size int
}

func (f Fixed) Length(_ *rand.Rand) int { return f.Size }

func (f Fixed) Name() string { return FixedModel }

// Uniform draws lengths uniformly from [1, 2*Mean-1].
type Uniform struct {
	Mean int
}

func (u Uniform) Length(rng *rand.Rand) int {
	return 1 + rng.IntN(2*u.Mean-1)
}

func (u Uniform) Name() string { return UniformModel }
