package providers

import "context"

// LanguageDetector returns the ISO 639-1 code (lower case) of the dominant
// language. Short or ambiguous text fails with util.ErrUndetectable.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// SentimentAnalyzer returns a polarity in [-1, 1]; 0 means neutral.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

type DetectorFunc func(ctx context.Context, text string) (string, error)

func (f DetectorFunc) Detect(ctx context.Context, text string) (string, error) { return f(ctx, text) }

type AnalyzerFunc func(ctx context.Context, text string) (float64, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, text string) (float64, error) { return f(ctx, text) }
