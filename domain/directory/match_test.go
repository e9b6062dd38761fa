package directory

import (
	"testing"

	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/stretchr/testify/assert"
)

func matchIDs(matches []Match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Service.ID()
	}
	return ids
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Zero(t, CosineSimilarity([]float64{1}, []float64{1, 2}))
	assert.Zero(t, CosineSimilarity([]float64{0, 0}, []float64{1, 2}))
}

func TestRankByVectors(t *testing.T) {
	a := NewService(locale.NewText("Alpha", ""), locale.Text{}, "", "", ChannelOnline, "")
	b := NewService(locale.NewText("Beta", ""), locale.Text{}, "", "", ChannelOnline, "")
	c := NewService(locale.NewText("Gamma", ""), locale.Text{}, "", "", ChannelOnline, "")

	got := RankByVectors([]float64{1, 0}, []Service{a, b, c}, [][]float64{{0.5, 0.5}, {1, 0}, {0, 1}}, 5)
	assert.Equal(t, []string{"beta", "alpha"}, matchIDs(got), "orthogonal vectors are dropped")

	got = RankByVectors([]float64{1, 0}, []Service{a, b, c}, [][]float64{{1, 0}, {1, 0}, {1, 0}}, 2)
	assert.Equal(t, []string{"alpha", "beta"}, matchIDs(got), "ties keep input order")
}

func TestRankByKeywords(t *testing.T) {
	coo := NewService(locale.NewText("Certificate of Origin", "شهادة المنشأ"), locale.NewText("Export documents", ""), "", "", ChannelOnline, "")
	esg := NewService(locale.NewText("ESG Label", "علامة الاستدامة"), locale.NewText("Sustainability certificate", ""), "", "", ChannelOnline, "")

	got := RankByKeywords("certificate", []Service{esg, coo}, 0)
	assert.Equal(t, []string{"certificate-of-origin", "esg-label"}, matchIDs(got), "name hits outrank description hits")

	got = RankByKeywords("الاستدامه", []Service{coo, esg}, 0)
	assert.Equal(t, []string{"esg-label"}, matchIDs(got))

	assert.Empty(t, RankByKeywords("unrelated", []Service{coo, esg}, 0))
}
