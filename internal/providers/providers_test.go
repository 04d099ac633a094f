package providers

import (
	"context"
	"errors"
	"testing"

	"dataprep/internal/config"
	"dataprep/internal/util"

	"github.com/stretchr/testify/require"
)

func TestLexiconAnalyzerPolarity(t *testing.T) {
	a, err := NewTurkishLexiconAnalyzer()
	require.NoError(t, err)
	ctx := context.Background()

	cases := []struct {
		text string
		sign int
	}{
		{"Bugün hava çok güzel", 1},
		{"Film gerçekten berbat ve sıkıcı", -1},
		{"Yemek hiç güzel değil", -1},
		{"Toplantı saat üçte", 0},
		{"BAŞARILI bir gün!", 1},
		{"Hava güzeldi", 1},
	}
	for _, c := range cases {
		p, err := a.Analyze(ctx, c.text)
		require.NoError(t, err, c.text)
		require.GreaterOrEqual(t, p, -1.0)
		require.LessOrEqual(t, p, 1.0)
		switch c.sign {
		case 1:
			require.Greater(t, p, 0.0, c.text)
		case -1:
			require.Less(t, p, 0.0, c.text)
		default:
			require.Equal(t, 0.0, p, c.text)
		}
	}
}

func TestParseLexiconRejectsMalformedLines(t *testing.T) {
	_, err := parseLexicon([]byte("iyi\t2\nbozuk satır\n"))
	require.Error(t, err)
	w, err := parseLexicon([]byte("# comment\niyi\t2\n\nkötü\t-3\n"))
	require.NoError(t, err)
	require.Equal(t, 2.0, w["iyi"])
	require.Equal(t, -3.0, w["kötü"])
}

func TestMockDetector(t *testing.T) {
	d := NewMockDetector()
	ctx := context.Background()

	code, err := d.Detect(ctx, "Bugün hava çok güzel")
	require.NoError(t, err)
	require.Equal(t, "tr", code)

	code, err = d.Detect(ctx, "The weather is lovely today")
	require.NoError(t, err)
	require.Equal(t, "en", code)

	_, err = d.Detect(ctx, "xyz123")
	require.True(t, errors.Is(err, util.ErrUndetectable))
}

func TestLinguaDetectorRejectsSymbols(t *testing.T) {
	d, err := NewLinguaDetector("tr", "en")
	require.NoError(t, err)
	_, err = d.Detect(context.Background(), "12 !! ??")
	require.ErrorIs(t, err, util.ErrUndetectable)
}

func TestLinguaDetectorDetectsTurkish(t *testing.T) {
	ctx := context.Background()
	d, err := NewLinguaDetector()
	require.NoError(t, err)

	code, err := d.Detect(ctx, "Bugün hava çok güzel")
	require.NoError(t, err)
	require.Equal(t, "tr", code)

	_, err = d.Detect(ctx, "xyz123")
	require.ErrorIs(t, err, util.ErrUndetectable)
}

func TestLinguaDetectorKeepsBestGuess(t *testing.T) {
	d, err := NewLinguaDetector("tr", "en")
	require.NoError(t, err)

	code, err := d.Detect(context.Background(), "Harika bir gün geçirdim")
	require.NoError(t, err)
	require.Equal(t, "tr", code)
}

func TestLinguaDetectorNeedsTwoLanguages(t *testing.T) {
	_, err := NewLinguaDetector("tr")
	require.Error(t, err)
	_, err = NewLinguaDetector("tr", "zz")
	require.Error(t, err)
}

func TestNewManagerMock(t *testing.T) {
	m, err := NewManager(config.Config{LangDetector: "mock", Sentiment: "mock"})
	require.NoError(t, err)
	d, a := m.Names()
	require.Equal(t, "mock", d)
	require.Equal(t, "mock", a)
	require.IsType(t, &MockDetector{}, m.Detector())
	require.IsType(t, &MockAnalyzer{}, m.Analyzer())

	_, err = NewManager(config.Config{LangDetector: "whatever", Sentiment: "mock"})
	require.Error(t, err)
}
