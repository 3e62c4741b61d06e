package search

import (
	"regexp"
	"strings"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// minTokenRunes is the noise cutoff: tokens this short or shorter carry no
// matching signal and are discarded on both sides. The cutoff is 3 ("how",
// "the", "for" drop out; "stock", "invoice" survive).
const minTokenRunes = 3

// departmentBoost is applied when a candidate's owning department equals the
// requested department and that department is not general.
const departmentBoost = 1.5

// Match is the best-scoring FAQ candidate with its confidence in [0,1].
//
// Confidence is the fraction of the query's meaningful tokens found in the
// FAQ question, deliberately asymmetric (not Jaccard): a short query that is
// fully covered by a long FAQ question still scores 1.0.
type Match struct {
	FAQ        domain.FAQ
	Confidence float64
}

// wordRE tokenizes on letter/digit runs, Unicode-aware.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Tokenize lower-cases text and returns its meaningful tokens as a set,
// dropping tokens of length <= minTokenRunes.
func Tokenize(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range wordRE.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(tok)) <= minTokenRunes {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// BestMatch scores text against the candidate FAQ entries and returns the
// highest-confidence match, or nil when the query has no meaningful tokens
// or no candidate scores above zero. Callers compare the returned confidence
// against their routing/direct thresholds; BestMatch itself applies none.
func BestMatch(text, department string, candidates []domain.FAQ) *Match {
	qTokens := Tokenize(text)
	if len(qTokens) == 0 {
		// Nothing meaningful to match on; confidence would be undefined.
		return nil
	}

	var best *Match
	for i := range candidates {
		faq := &candidates[i]
		score := overlap(qTokens, Tokenize(faq.Question))
		if score <= 0 {
			continue
		}
		if department != "" && department != "general" && faq.Department == department {
			score *= departmentBoost
			if score > 1.0 {
				score = 1.0
			}
		}
		if best == nil || score > best.Confidence {
			best = &Match{FAQ: *faq, Confidence: score}
		}
	}
	return best
}

// overlap returns |q ∩ f| / |q|.
func overlap(q, f map[string]struct{}) float64 {
	inter := 0
	for tok := range q {
		if _, ok := f[tok]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(q))
}
