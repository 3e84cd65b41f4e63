// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package panels

import (
	"cmp"
	"slices"
	"strings"

	"github.com/danielhkuo/inct-panel/dataset"
)

// Word cloud size limits
const (
	MinTopN     = 10
	MaxTopN     = 300
	StepTopN    = 10
	DefaultTopN = 30

	// KeywordLimit is the number of bars in the keyword chart
	KeywordLimit = 100
)

// stopwords are Portuguese connectives dropped when they appear alone.
var stopwords = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"em": true, "no": true, "na": true, "nas": true, "nos": true,
	"para": true, "por": true, "e": true, "a": true, "o": true,
	"os": true, "as": true, "um": true, "uma": true, "com": true,
	"ao": true, "aos": true, "se": true, "que": true, "sobre": true,
	"entre": true, "ou": true, "como": true,
}

// IsStopword reports whether term is a single stopword. Multi-word terms
// are never stopwords, even when they contain one.
func IsStopword(term string) bool {
	if strings.ContainsAny(term, " \t\n") {
		return false
	}
	return stopwords[term]
}

// WordFreq is one term of a word cloud or keyword chart.
type WordFreq struct {
	Word string
	Freq float64
}

// ClampTopN snaps a requested cloud size to the 10..300 range in steps of 10.
// Zero or negative picks the default.
func ClampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	n = (n + StepTopN/2) / StepTopN * StepTopN
	return max(MinTopN, min(MaxTopN, n))
}

// WordFrequencies drops stopwords and returns the topN most frequent terms. When a
// term repeats, its last frequency is used, as the rows are already
// aggregated.
func WordFrequencies(rows []dataset.WordRow, topN int) []WordFreq {
	idx := make(map[string]int)
	var out []WordFreq
	for _, r := range rows {
		if r.Word == "" || IsStopword(r.Word) {
			continue
		}
		if i, ok := idx[r.Word]; ok {
			out[i].Freq = r.Freq
			continue
		}
		idx[r.Word] = len(out)
		out = append(out, WordFreq{Word: r.Word, Freq: r.Freq})
	}
	sortFreqDesc(out)
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// KeywordTotals sums frequencies per term over the given periods (all when
// none) and keeps the limit largest. Stopwords are kept.
func KeywordTotals(rows []dataset.WordRow, periods []string, limit int) []WordFreq {
	idx := make(map[string]int)
	var out []WordFreq
	for _, r := range InPeriods(rows, periods) {
		if r.Word == "" {
			continue
		}
		i, ok := idx[r.Word]
		if !ok {
			i = len(out)
			idx[r.Word] = i
			out = append(out, WordFreq{Word: r.Word})
		}
		out[i].Freq += r.Freq
	}
	sortFreqDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortFreqDesc(words []WordFreq) {
	slices.SortStableFunc(words, func(a, b WordFreq) int {
		return cmp.Compare(b.Freq, a.Freq)
	})
}

// Periods lists the distinct periods of rows, sorted.
func Periods(rows []dataset.WordRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if r.Period == "" || seen[r.Period] {
			continue
		}
		seen[r.Period] = true
		out = append(out, r.Period)
	}
	slices.Sort(out)
	return out
}

// InPeriods keeps rows whose period is one of periods. No periods keeps all.
func InPeriods(rows []dataset.WordRow, periods []string) []dataset.WordRow {
	if len(periods) == 0 {
		return rows
	}
	want := make(map[string]bool, len(periods))
	for _, p := range periods {
		want[dataset.Normalize(p)] = true
	}
	return Where(rows, func(r dataset.WordRow) bool {
		return want[dataset.Normalize(r.Period)]
	})
}

// CloudWord is a term with a font size for rendering.
type CloudWord struct {
	WordFreq
	Size int // pixels
}

// Cloud scales font sizes linearly between minPx and maxPx by frequency.
func Cloud(words []WordFreq, minPx, maxPx int) []CloudWord {
	out := make([]CloudWord, len(words))
	if len(words) == 0 {
		return out
	}
	lo, hi := words[0].Freq, words[0].Freq
	for _, w := range words {
		lo = min(lo, w.Freq)
		hi = max(hi, w.Freq)
	}
	for i, w := range words {
		size := maxPx
		if hi > lo {
			size = minPx + int(float64(maxPx-minPx)*(w.Freq-lo)/(hi-lo)+0.5)
		}
		out[i] = CloudWord{WordFreq: w, Size: size}
	}
	return out
}
