package providers

import (
	"fmt"

	"dataprep/internal/config"
)

// Manager owns the configured detection and sentiment providers.
type Manager struct {
	detector    LanguageDetector
	analyzer    SentimentAnalyzer
	detectorRef ProviderRef
	analyzerRef ProviderRef
}

func NewManager(cfg config.Config) (*Manager, error) {
	dref := ParseProviderRef(cfg.LangDetector)
	d, err := buildDetector(dref)
	if err != nil {
		return nil, err
	}
	aref := ParseProviderRef(cfg.Sentiment)
	a, err := buildAnalyzer(aref)
	if err != nil {
		return nil, err
	}
	return &Manager{detector: d, analyzer: a, detectorRef: dref, analyzerRef: aref}, nil
}

func (m *Manager) Detector() LanguageDetector  { return m.detector }
func (m *Manager) Analyzer() SentimentAnalyzer { return m.analyzer }

func (m *Manager) Names() (detector, analyzer string) {
	return m.detectorRef.Name, m.analyzerRef.Name
}

func buildDetector(ref ProviderRef) (LanguageDetector, error) {
	switch ref.Name {
	case "", "lingua":
		return NewLinguaDetector(ref.Options...)
	case "mock":
		return NewMockDetector(), nil
	default:
		return nil, fmt.Errorf("unsupported language detector: %s", ref.Raw)
	}
}

func buildAnalyzer(ref ProviderRef) (SentimentAnalyzer, error) {
	switch ref.Name {
	case "", "lexicon":
		return NewTurkishLexiconAnalyzer()
	case "mock":
		return NewMockAnalyzer(), nil
	default:
		return nil, fmt.Errorf("unsupported sentiment analyzer: %s", ref.Raw)
	}
}
