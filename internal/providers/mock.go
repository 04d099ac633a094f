package providers

import (
	"context"
	"strings"

	"dataprep/internal/util"
)

const turkishLetters = "çğıöşüÇĞİÖŞÜ"

var turkishStopwords = map[string]struct{}{
	"ve": {}, "bir": {}, "bu": {}, "da": {}, "de": {}, "için": {}, "ile": {}, "çok": {}, "ama": {}, "gibi": {},
}

// MockDetector is a deterministic offline detector: Turkish letters or stopwords
// mean "tr", anything else with enough letters is "en".
type MockDetector struct{}

func NewMockDetector() *MockDetector { return &MockDetector{} }

func (m *MockDetector) Detect(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if countLetters(text) <= minDetectLetters {
		return "", util.ErrUndetectable
	}
	if strings.ContainsAny(text, turkishLetters) {
		return "tr", nil
	}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, ok := turkishStopwords[w]; ok {
			return "tr", nil
		}
	}
	return "en", nil
}

// MockAnalyzer reports a fixed positive polarity for any non-empty text.
type MockAnalyzer struct {
	Polarity float64
}

func NewMockAnalyzer() *MockAnalyzer { return &MockAnalyzer{Polarity: 0.5} }

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	return m.Polarity, nil
}
