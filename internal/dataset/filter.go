package dataset

import (
	"context"
	"errors"
	"fmt"

	"dataprep/internal/providers"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTargetLanguage = "tr"
	defaultFilterWorkers  = 4
)

type DropReason string

const (
	DropDetectFailed    DropReason = "detect_failed"
	DropLanguage        DropReason = "language"
	DropSentimentFailed DropReason = "sentiment_failed"
	DropNeutral         DropReason = "neutral"
)

type Drop struct {
	Index  int        `json:"index"`
	Reason DropReason `json:"reason"`
}

type FilterOptions struct {
	Detector       providers.LanguageDetector
	Analyzer       providers.SentimentAnalyzer
	TargetLanguage string
	Workers        int
}

type FilterResult struct {
	Kept    []string `json:"kept"`
	Dropped []Drop   `json:"dropped"`
}

// DropCounts groups dropped items by reason.
func (r FilterResult) DropCounts() map[DropReason]int {
	out := make(map[DropReason]int, 4)
	for _, d := range r.Dropped {
		out[d.Reason]++
	}
	return out
}

// Filter keeps the items detected as the target language whose polarity is
// non-zero. Per-item provider failures drop that item only; surviving items keep
// their relative order.
func Filter(ctx context.Context, items []string, opts FilterOptions) (FilterResult, error) {
	if opts.Detector == nil || opts.Analyzer == nil {
		return FilterResult{}, fmt.Errorf("filter: detector and analyzer are required")
	}
	target := opts.TargetLanguage
	if target == "" {
		target = DefaultTargetLanguage
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultFilterWorkers
	}

	verdicts := make([]DropReason, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range items {
		g.Go(func() error {
			reason, err := judge(gctx, text, target, opts)
			if err != nil {
				return err
			}
			verdicts[i] = reason
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FilterResult{}, err
	}

	res := FilterResult{Kept: make([]string, 0, len(items))}
	for i, v := range verdicts {
		if v == "" {
			res.Kept = append(res.Kept, items[i])
			continue
		}
		res.Dropped = append(res.Dropped, Drop{Index: i, Reason: v})
	}
	return res, nil
}

// judge returns "" when the item is kept. Only context cancellation is fatal.
func judge(ctx context.Context, text, target string, opts FilterOptions) (DropReason, error) {
	lang, err := opts.Detector.Detect(ctx, text)
	if err != nil {
		if isContextErr(err) {
			return "", err
		}
		return DropDetectFailed, nil
	}
	if lang != target {
		return DropLanguage, nil
	}
	polarity, err := opts.Analyzer.Analyze(ctx, text)
	if err != nil {
		if isContextErr(err) {
			return "", err
		}
		return DropSentimentFailed, nil
	}
	if polarity == 0 {
		return DropNeutral, nil
	}
	return "", nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
