// Package check runs randomized soak workloads against the treap containers and verifies every
// answer against a plain reference list.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/g-m-twostay/treaps/Rand"
	"github.com/g-m-twostay/treaps/Trees"
	"github.com/g-m-twostay/treaps/internal/config"
)

// ErrDiverged is returned when a container disagrees with the reference.
var ErrDiverged = errors.New("container diverged from reference")

// ErrCorrupt is returned when a container reports a broken structure.
var ErrCorrupt = errors.New("container structure is corrupt")

// Sequence is the container type driven by the positional workload.
type Sequence = Trees.Sequence[int64, uint32]

// Report summarizes a finished workload.
type Report struct {
	Mode          string
	Ops           int
	Inserts       int
	Erases        int
	Sets          int
	Queries       int
	Verifications int
	FinalLen      int
}

// Run the workload described by cfg. An invalid cfg is rejected with the config sentinel errors.
func Run(ctx context.Context, logger *slog.Logger, cfg config.CheckConfig) (Report, error) {
	validateErr := cfg.Validate()
	if validateErr != nil {
		return Report{}, validateErr
	}

	logger.Info("check started", "mode", cfg.Mode, "ops", cfg.Ops, "seed", cfg.Seed)

	var (
		report Report
		err    error
	)

	switch cfg.Mode {
	case config.ModeSorted:
		report, err = RunSorted(ctx, logger, Trees.NewWith[int64, uint32](priorities(cfg.Seed), cfg.Hint), cfg)
	default:
		report, err = RunPositional(ctx, logger, Trees.NewWith[int64, uint32](priorities(cfg.Seed), cfg.Hint), cfg)
	}

	if err != nil {
		logger.Error("check failed", "mode", cfg.Mode, "err", err)

		return report, err
	}

	logger.Info("check passed",
		"mode", report.Mode,
		"ops", report.Ops,
		"inserts", report.Inserts,
		"erases", report.Erases,
		"sets", report.Sets,
		"queries", report.Queries,
		"verifications", report.Verifications,
		"len", report.FinalLen,
	)

	return report, nil
}

// priorities of the container come from a stream of their own so they don't correlate with the
// operations drawn from the seed.
func priorities(seed string) Rand.Source {
	return Rand.FromLabel(seed + "/priorities")
}

// RunPositional drives seq with random inserts, erases, sets, gets and range sums.
func RunPositional(ctx context.Context, logger *slog.Logger, seq Sequence, cfg config.CheckConfig) (Report, error) {
	validateErr := cfg.Validate()
	if validateErr != nil {
		return Report{}, validateErr
	}

	gen := Rand.FromLabel(cfg.Seed)
	ref := arraylist.New()
	report := Report{Mode: config.ModePositional}

	for op := 0; op < cfg.Ops; op++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		opErr := positionalStep(seq, ref, gen, cfg.ValueRange, &report)
		if opErr != nil {
			return report, fmt.Errorf("op %d: %w", op, opErr)
		}

		report.Ops++

		if report.Ops%cfg.VerifyEvery == 0 {
			verifyErr := verify(seq, ref)
			if verifyErr != nil {
				return report, fmt.Errorf("op %d: %w", op, verifyErr)
			}

			report.Verifications++

			logger.Debug("verified", "ops", report.Ops, "len", seq.Len())
		}
	}

	verifyErr := verify(seq, ref)
	if verifyErr != nil {
		return report, verifyErr
	}

	report.Verifications++
	report.FinalLen = int(seq.Len())

	return report, nil
}

func positionalStep(seq Sequence, ref *arraylist.List, gen Rand.Source, valueRange int64, report *Report) error {
	size := uint64(ref.Size())
	value := int64(gen.Rand(uint64(2*valueRange))) - valueRange

	switch kind := gen.Rand(10); {
	case kind < 5 || size == 0:
		pos := gen.Rand(size + 1)

		insertErr := seq.Insert(uint32(pos), value)
		if insertErr != nil {
			return insertErr
		}

		ref.Insert(int(pos), value)
		report.Inserts++
	case kind < 7:
		pos := gen.Rand(size)

		eraseErr := seq.Erase(uint32(pos))
		if eraseErr != nil {
			return eraseErr
		}

		ref.Remove(int(pos))
		report.Erases++
	case kind < 8:
		pos := gen.Rand(size)

		setErr := seq.Set(uint32(pos), value)
		if setErr != nil {
			return setErr
		}

		ref.Set(int(pos), value)
		report.Sets++
	case kind < 9:
		pos := gen.Rand(size)

		got, getErr := seq.Get(uint32(pos))
		if getErr != nil {
			return getErr
		}

		want, _ := ref.Get(int(pos))
		if got != want.(int64) {
			return fmt.Errorf("%w: get %d = %d, want %d", ErrDiverged, pos, got, want)
		}

		report.Queries++
	default:
		left := gen.Rand(size + 1)
		right := left + gen.Rand(size-left+1)

		got, sumErr := seq.Sum(uint32(left), uint32(right))
		if sumErr != nil {
			return sumErr
		}

		var want int64
		for _, v := range ref.Values()[left:right] {
			want += v.(int64)
		}

		if got != want {
			return fmt.Errorf("%w: sum [%d,%d) = %d, want %d", ErrDiverged, left, right, got, want)
		}

		report.Queries++
	}

	return nil
}

// verify the whole sequence and its structure.
func verify(seq Sequence, ref *arraylist.List) error {
	if seq.Corrupt() {
		return ErrCorrupt
	}

	if int(seq.Len()) != ref.Size() {
		return fmt.Errorf("%w: len %d, want %d", ErrDiverged, seq.Len(), ref.Size())
	}

	pos := 0

	var mismatch error

	seq.InOrder(func(v *int64) bool {
		want, _ := ref.Get(pos)
		if *v != want.(int64) {
			mismatch = fmt.Errorf("%w: position %d = %d, want %d", ErrDiverged, pos, *v, want)

			return false
		}

		pos++

		return true
	})

	return mismatch
}

// RunSorted builds tr with OrderedInsert and checks the rank of every new value against a sorted
// reference, then reads the whole sequence back by position.
func RunSorted(ctx context.Context, logger *slog.Logger, tr *Trees.Treap[int64, uint32], cfg config.CheckConfig) (Report, error) {
	validateErr := cfg.Validate()
	if validateErr != nil {
		return Report{}, validateErr
	}

	gen := Rand.FromLabel(cfg.Seed)
	ref := make([]int64, 0, cfg.Ops)
	report := Report{Mode: config.ModeSorted}

	for op := 0; op < cfg.Ops; op++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		value := int64(gen.Rand(uint64(cfg.ValueRange)))
		rank, _ := slices.BinarySearch(ref, value)
		ref = slices.Insert(ref, rank, value)

		insertErr := tr.OrderedInsert(value)
		if insertErr != nil {
			return report, fmt.Errorf("op %d: %w", op, insertErr)
		}

		report.Inserts++

		// rank among the values before this one.
		want, _ := slices.BinarySearch(ref[:op], value)

		got, boundErr := tr.LowerBound(0, uint32(op), value)
		if boundErr != nil {
			return report, fmt.Errorf("op %d: %w", op, boundErr)
		}

		if int(got) != want {
			return report, fmt.Errorf("%w: op %d: lower bound of %d = %d, want %d", ErrDiverged, op, value, got, want)
		}

		report.Queries++
		report.Ops++

		if report.Ops%cfg.VerifyEvery == 0 {
			if tr.Corrupt() {
				return report, fmt.Errorf("op %d: %w", op, ErrCorrupt)
			}

			report.Verifications++

			logger.Debug("verified", "ops", report.Ops, "depth", tr.Depth())
		}
	}

	for pos, want := range ref {
		got, getErr := tr.Get(uint32(pos))
		if getErr != nil {
			return report, getErr
		}

		if got != want {
			return report, fmt.Errorf("%w: position %d = %d, want %d", ErrDiverged, pos, got, want)
		}
	}

	report.Verifications++
	report.FinalLen = int(tr.Len())

	return report, nil
}
