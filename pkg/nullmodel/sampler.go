// Package nullmodel builds the null distribution of TE family counts from
// randomly placed windows.
//
// Each iteration places the same number of windows as the observed set,
// with lengths drawn from a LengthModel, uniformly inside
// [1, chromosome length]. Random windows may overlap each other. The
// per-family overlap counts of an iteration go to one column of a Matrix.
//
// Iteration i draws from its own PCG stream seeded with (seed, i), so the
// matrix depends only on the seed and never on scheduling of workers.
package nullmodel

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/gnames/tebreak/pkg/interval"
	"golang.org/x/sync/errgroup"
)

// Tallier counts overlaps of windows with labeled intervals, returning
// counts in the order of Labels.
type Tallier interface {
	Labels() []string
	Tally(windows []interval.Interval) []int
}

// Sampler generates random window sets and records their counts.
type Sampler struct {
	// Chrom is the chromosome random windows are placed on.
	Chrom string

	// ChromLength is the last valid coordinate of the chromosome.
	ChromLength int

	// WindowCount is the number of windows per iteration.
	WindowCount int

	// Lengths draws window lengths.
	Lengths LengthModel

	// Counter provides overlap counts of a window set.
	Counter Tallier

	// Seed is the run-level random seed.
	Seed int64

	// Iterations is the number of random window sets.
	Iterations int

	// Jobs limits the number of concurrent iterations. Zero means
	// runtime.NumCPU().
	Jobs int
}

// ChromLengthError is returned when the chromosome length cannot bound
// random windows.
type ChromLengthError struct {
	Chrom  string
	Length int
}

func (e *ChromLengthError) Error() string {
	return fmt.Sprintf("chromosome '%s' has non-positive length %d",
		e.Chrom, e.Length)
}

func (s *Sampler) check() error {
	if s.ChromLength < 1 {
		return &ChromLengthError{Chrom: s.Chrom, Length: s.ChromLength}
	}
	if s.Iterations < 1 {
		return fmt.Errorf("number of iterations must be positive, got %d",
			s.Iterations)
	}
	if s.WindowCount < 0 {
		return fmt.Errorf("window count cannot be negative, got %d",
			s.WindowCount)
	}
	if s.Lengths == nil || s.Counter == nil {
		return fmt.Errorf("sampler needs a length model and a counter")
	}
	return nil
}

// Run fills a Matrix with Iterations columns. progress, if not nil, is
// called once after each finished iteration and may be called from several
// goroutines. Only context cancellation stops the run early.
func (s *Sampler) Run(
	ctx context.Context,
	progress func(),
) (*Matrix, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	jobs := s.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	res := NewMatrix(s.Counter.Labels(), s.Iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range s.Iterations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			windows := s.Windows(i)
			res.SetColumn(i, s.Counter.Tally(windows))
			if progress != nil {
				progress()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Windows returns the random window set of iteration iter. Windows longer
// than the chromosome cannot be placed and are left out, so a degenerate
// chromosome yields fewer (possibly zero) windows.
func (s *Sampler) Windows(iter int) []interval.Interval {
	rng := rand.New(rand.NewPCG(uint64(s.Seed), uint64(iter)))
	res := make([]interval.Interval, 0, s.WindowCount)
	for range s.WindowCount {
		l := s.Lengths.Length(rng)
		if l > s.ChromLength {
			continue
		}
		start := 1 + rng.IntN(s.ChromLength-l+1)
		res = append(res, interval.Interval{
			Chrom: s.Chrom,
			Start: start,
			End:   start + l - 1,
		})
	}
	return res
}
