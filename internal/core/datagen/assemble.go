package datagen

import (
	"fmt"
	"io"
	"log/slog"
	"nlu-datagen/internal/core/types"

	"github.com/schollz/progressbar/v3"
)

// FixedCount calls produce exactly n times and keeps every result, duplicates
// included.
func FixedCount[T any](n int, produce func() (T, error)) ([]T, error) {
	out := make([]T, 0, n)
	for range n {
		item, err := produce()
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// BoundedUnique collects distinct results until it has n of them or has called
// produce maxAttempts times. Results keep first-seen order. When the budget is
// exhausted first the partial result is returned with a *ShortfallError.
func BoundedUnique[T comparable](n, maxAttempts int, produce func() (T, error)) ([]T, error) {
	seen := make(map[T]struct{}, n)
	out := make([]T, 0, n)

	attempts := 0
	for len(out) < n && attempts < maxAttempts {
		attempts++
		item, err := produce()
		if err != nil {
			return out, err
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	if len(out) < n {
		return out, &ShortfallError{Requested: n, Produced: len(out), Attempts: attempts}
	}
	return out, nil
}

type CorpusOpts struct {
	PerIntent      int
	NoneMultiplier int
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

// BuildCorpus generates PerIntent examples for every intent
// (PerIntent*NoneMultiplier for none) and shuffles the result.
func BuildCorpus(r Rand, aligner *Aligner, generators []Generator, opts CorpusOpts) ([]types.Example, error) {
	counts := make(map[types.Intent]int, len(generators))
	total := 0
	for _, gen := range generators {
		n := opts.PerIntent
		if gen.Intent() == types.NoneIntent {
			n *= opts.NoneMultiplier
		}
		counts[gen.Intent()] = n
		total += n
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("⏳ generating"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionClearOnFinish(),
	)

	corpus := make([]types.Example, 0, total)
	for _, gen := range generators {
		examples, err := FixedCount(counts[gen.Intent()], func() (types.Example, error) {
			example, err := gen.Generate(r, aligner)
			if err != nil {
				return example, err
			}
			if err := example.Validate(); err != nil {
				return example, err
			}
			_ = bar.Add(1)
			return example, nil
		})
		if err != nil {
			return nil, fmt.Errorf("error generating '%s' examples: %w", gen.Intent(), err)
		}
		slog.Debug("generated intent examples", "intent", gen.Intent(), "examples", len(examples))
		corpus = append(corpus, examples...)
	}
	_ = bar.Finish()

	Shuffle(r, corpus)

	slog.Info("generated corpus", "examples", len(corpus), "intents", len(generators))
	return corpus, nil
}

// CountIntents tallies examples per intent.
func CountIntents(examples []types.Example) map[types.Intent]int {
	counts := make(map[types.Intent]int)
	for _, example := range examples {
		counts[example.Intent]++
	}
	return counts
}

// PlainSentences generates n unique sentences with at most n*attemptFactor
// attempts. Generators in PlainFixed mode, or any generator when
// allowDuplicates is set, produce exactly n sentences instead.
func PlainSentences(r Rand, gen Generator, n, attemptFactor int, allowDuplicates bool) ([]string, error) {
	produce := func() (string, error) { return gen.Sentence(r) }
	if allowDuplicates || gen.PlainMode() == PlainFixed {
		return FixedCount(n, produce)
	}
	return BoundedUnique(n, n*attemptFactor, produce)
}
