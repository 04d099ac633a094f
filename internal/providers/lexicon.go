package providers

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed lexicon_tr.tsv
var turkishLexicon []byte

const (
	maxLexiconWeight = 5.0
	minStemRunes     = 4
)

var (
	turkishNegators = map[string]struct{}{"değil": {}, "yok": {}, "hiç": {}, "asla": {}}
	turkishBoosters = map[string]float64{"çok": 1.5, "gayet": 1.3, "oldukça": 1.3, "gerçekten": 1.3, "aşırı": 1.5}
)

// LexiconAnalyzer scores polarity from a weighted word list in the AFINN style:
// matched weights are summed (negators flip, boosters scale the next match) and
// the sum is normalized by the maximum weight per match into [-1, 1].
type LexiconAnalyzer struct {
	lang    language.Tag
	weights map[string]float64
}

func NewTurkishLexiconAnalyzer() (*LexiconAnalyzer, error) {
	weights, err := parseLexicon(turkishLexicon)
	if err != nil {
		return nil, err
	}
	return &LexiconAnalyzer{lang: language.Turkish, weights: weights}, nil
}

func parseLexicon(b []byte) (map[string]float64, error) {
	out := make(map[string]float64, 128)
	scan := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for scan.Scan() {
		line++
		row := strings.TrimSpace(scan.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		parts := strings.Split(row, "\t")
		if len(parts) != 2 {
			return nil, fmt.Errorf("lexicon line %d: expected word<TAB>weight", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		out[norm.NFC.String(strings.TrimSpace(parts[0]))] = v
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return out, nil
}

func (a *LexiconAnalyzer) Analyze(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	words := a.tokenize(text)
	var (
		sum     float64
		last    float64
		matched int
		boost   = 1.0
	)
	for _, w := range words {
		if _, ok := turkishNegators[w]; ok {
			// Turkish negation follows the word it negates: flip the last match once.
			sum -= 2 * last
			last = 0
			continue
		}
		if f, ok := turkishBoosters[w]; ok {
			boost = f
			continue
		}
		v, ok := a.lookup(w)
		if !ok {
			continue
		}
		last = v * boost
		sum += last
		matched++
		boost = 1.0
	}
	if matched == 0 {
		return 0, nil
	}
	p := sum / (maxLexiconWeight * float64(matched))
	if p > 1 {
		p = 1
	}
	if p < -1 {
		p = -1
	}
	return p, nil
}

func (a *LexiconAnalyzer) tokenize(text string) []string {
	// cases.Caser is stateful, so one is built per call.
	lower := cases.Lower(a.lang).String(norm.NFC.String(text))
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// lookup tries an exact match, then the longest lexicon entry that prefixes
// the word, so inflected forms like "güzeldi" hit "güzel".
func (a *LexiconAnalyzer) lookup(w string) (float64, bool) {
	if v, ok := a.weights[w]; ok {
		return v, true
	}
	for end := len(w); end > 0; {
		_, size := utf8.DecodeLastRuneInString(w[:end])
		end -= size
		if utf8.RuneCountInString(w[:end]) < minStemRunes {
			break
		}
		if v, ok := a.weights[w[:end]]; ok {
			return v, true
		}
	}
	return 0, false
}
