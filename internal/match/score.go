// Package match implements the compatibility scoring function.
//
// Score(a, b) is a pure function of the two profiles' age and interests,
// symmetric in its arguments, with range (0, 100]:
//
//	score = 70 * jaccard(interestsA, interestsB) + 30 / (1 + |ageA - ageB|)
//
// The interest term rewards shared interests relative to the combined set;
// the age term decays with the age gap. Scores are rounded to two decimals
// so stored and cached values compare exactly.
package match

import (
	"math"
	"strings"

	"github.com/metamingle/server/internal/db"
)

const (
	interestWeight = 70.0
	ageWeight      = 30.0
)

// Score computes the compatibility score between two profiles.
// Score(a, b) == Score(b, a) for all inputs.
func Score(a, b *db.Profile) float64 {
	j := jaccard(normalize(a.Interests), normalize(b.Interests))

	diff := float64(a.Age) - float64(b.Age)
	age := ageWeight / (1 + math.Abs(diff))

	return round2(interestWeight*j + age)
}

// normalize case-folds, trims, and deduplicates an interest list.
func normalize(interests []string) map[string]struct{} {
	set := make(map[string]struct{}, len(interests))
	for _, s := range interests {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets score 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for s := range a {
		if _, ok := b[s]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
