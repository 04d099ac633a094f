package providers

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"dataprep/internal/util"

	"github.com/pemistahl/lingua-go"
)

const minDetectLetters = 3

type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over the given ISO 639-1 codes, or over
// every supported language when codes is empty.
func NewLinguaDetector(codes ...string) (*LinguaDetector, error) {
	var b lingua.LanguageDetectorBuilder
	if len(codes) == 0 {
		b = lingua.NewLanguageDetectorBuilder().FromAllLanguages()
	} else {
		isoCodes := make([]lingua.IsoCode639_1, 0, len(codes))
		for _, c := range codes {
			iso := lingua.GetIsoCode639_1FromValue(strings.TrimSpace(c))
			if iso == lingua.UnknownIsoCode639_1 {
				return nil, fmt.Errorf("unsupported language code: %s", c)
			}
			isoCodes = append(isoCodes, iso)
		}
		if len(isoCodes) < 2 {
			return nil, fmt.Errorf("lingua needs at least two candidate languages, got %d", len(isoCodes))
		}
		b = lingua.NewLanguageDetectorBuilder().FromIsoCodes639_1(isoCodes...)
	}
	return &LinguaDetector{detector: b.Build()}, nil
}

func (l *LinguaDetector) Detect(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if countLetters(text) <= minDetectLetters {
		return "", util.ErrUndetectable
	}
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", util.ErrUndetectable
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
