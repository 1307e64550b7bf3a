package schedule

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tiendc/go-deepcopy"
)

const minPlayers = 4

// Input problems detected before any trial runs. The whole call fails;
// no partial schedule is returned.
var (
	ErrTooFewPlayers = errors.New("at least 4 players are required")
	ErrBadRating     = errors.New("ratings must be positive")
	ErrBadTrials     = errors.New("trial count must be positive")
)

// Options configures one optimization run.
type Options struct {
	Trials  int
	Workers int            // 0 means one worker per CPU
	Seed    int64          // base seed; worker w draws from Seed + w
	Logger  *logrus.Logger // optional progress logging
}

// Result is the outcome of a run: the best schedule found, its score,
// and every sampled score for summary statistics.
type Result struct {
	Best   Schedule
	Score  float64
	Scores []float64
}

// Optimize runs Trials independent generate-and-score attempts split
// as evenly as possible across Workers goroutines and returns the
// best-by-score schedule. ratings is indexed by player ID, 1..n, with
// index 0 unused.
//
// Workers share no mutable state: each owns its generator, its RNG
// (seeded by worker index, so a run reproduces exactly for a fixed
// seed, trial count, and worker count), and its running best. The only
// synchronization point is the final reduction, which takes the
// minimum score and breaks ties toward the lowest worker index. The
// context is checked between trials; a canceled run returns the
// context's error.
func Optimize(ctx context.Context, ratings []float64, opts Options) (*Result, error) {
	n := len(ratings) - 1
	if n < minPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}
	for id := 1; id <= n; id++ {
		if ratings[id] <= 0 {
			return nil, fmt.Errorf("%w: player %d has rating %v", ErrBadRating, id, ratings[id])
		}
	}
	if opts.Trials <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadTrials, opts.Trials)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Trials {
		workers = opts.Trials
	}

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"players": n,
			"trials":  opts.Trials,
			"workers": workers,
		}).Info("starting schedule search")
	}

	results := make([]workerResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = runWorker(ctx, n, ratings, workerTrials(opts.Trials, workers, w), opts.Seed+int64(w))
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best := 0
	for w := 1; w < workers; w++ {
		if results[w].score < results[best].score {
			best = w
		}
	}

	out := &Result{Best: results[best].best, Score: results[best].score}
	for w := range results {
		out.Scores = append(out.Scores, results[w].scores...)
	}

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"score":   out.Score,
			"sampled": len(out.Scores),
		}).Info("schedule search finished")
	}
	return out, nil
}

type workerResult struct {
	best   Schedule
	score  float64
	scores []float64
}

// workerTrials splits total as evenly as possible; the first
// total%workers workers take one extra trial.
func workerTrials(total, workers, w int) int {
	share := total / workers
	if w < total%workers {
		share++
	}
	return share
}

// runWorker owns a private generator and random source for its whole
// lifetime and runs a tight generate-score-compare loop with no
// blocking operations. The generator reuses its buffers across trials,
// so an improving schedule is deep-copied before it is kept.
func runWorker(ctx context.Context, n int, ratings []float64, trials int, seed int64) workerResult {
	rng := rand.New(rand.NewSource(seed))
	gen := NewGenerator(n, rng)

	res := workerResult{scores: make([]float64, 0, trials)}
	for t := 0; t < trials; t++ {
		if ctx.Err() != nil {
			return res
		}

		s := gen.Generate()
		// The generator's contract is to never emit an invalid
		// schedule; a violation here means the repair or fallback
		// logic itself is broken and must not be retried.
		if err := Validate(s, n); err != nil {
			panic(fmt.Sprintf("schedule: generator emitted an invalid schedule: %v", err))
		}

		score := Score(s, ratings)
		res.scores = append(res.scores, score)
		if res.best == nil || score < res.score {
			var kept Schedule
			if err := deepcopy.Copy(&kept, s); err != nil {
				panic(fmt.Sprintf("schedule: copying best schedule: %v", err))
			}
			res.best = kept
			res.score = score
		}
	}
	return res
}
