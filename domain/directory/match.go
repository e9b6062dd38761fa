package directory

import (
	"math"
	"sort"

	"github.com/chamberhub/bizportal/domain/locale"
)

// MatchStrategy records how a service match was ranked.
type MatchStrategy string

// MatchStrategy values.
const (
	MatchEmbedding MatchStrategy = "embedding"
	MatchKeyword   MatchStrategy = "keyword"
)

// Match is a service ranked against a free-text need.
type Match struct {
	Service Service
	Score   float64
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 if the lengths differ or either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// RankByVectors orders services by similarity of vectors[i] to query and
// keeps the top k with positive similarity. vectors is parallel to services.
func RankByVectors(query []float64, services []Service, vectors [][]float64, k int) []Match {
	matches := make([]Match, 0, len(services))
	for i, svc := range services {
		if i >= len(vectors) {
			break
		}
		if score := CosineSimilarity(query, vectors[i]); score > 0 {
			matches = append(matches, Match{Service: svc, Score: score})
		}
	}
	return topK(matches, k)
}

// RankByKeywords orders services by folded keyword overlap with query and
// keeps the top k that match at least one token.
func RankByKeywords(query string, services []Service, k int) []Match {
	matches := make([]Match, 0, len(services))
	for _, svc := range services {
		if score := locale.Score(query, svc.SearchText()...); score > 0 {
			matches = append(matches, Match{Service: svc, Score: score})
		}
	}
	return topK(matches, k)
}

// topK sorts by score descending. Ties keep the display order.
func topK(matches []Match, k int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if k > 0 && k < len(matches) {
		matches = matches[:k]
	}
	return matches
}
