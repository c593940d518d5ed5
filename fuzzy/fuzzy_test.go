package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Trivia Titans", "Trivia Titans", 1.0},
		{"both empty", "", "", 1.0},
		{"case insensitive", "QUIZ MASTERS", "quiz masters", 1.0},
		{"one empty", "", "abc", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Disjoint(t *testing.T) {
	// No shared characters: all three positions must be edited.
	assert.Less(t, Similarity("abc", "xyz"), 0.34)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a, b := "The Quizzard of Oz", "Quizzards of Oz"
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
}

func TestBestMatch_PicksHighestAboveThreshold(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Name: "Trivia Titans"},
		{ID: 2, Name: "Trivia Titan"},
		{ID: 3, Name: "Quiz Masters"},
	}
	got := BestMatch("trivia titans", candidates)
	if assert.NotNil(t, got) {
		assert.Equal(t, 1, *got)
	}
}

func TestBestMatch_NilWhenNothingClearsThreshold(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Name: "Completely Different"},
		{ID: 2, Name: "Also Unrelated"},
	}
	assert.Nil(t, BestMatch("Trivia Titans", candidates))
}

func TestBestMatch_ThresholdIsStrict(t *testing.T) {
	// "abcdefghij" vs "abcdefgxyz": distance 3 over length 10 is exactly 0.7,
	// which must not link.
	candidates := []Candidate{{ID: 7, Name: "abcdefgxyz"}}
	assert.Nil(t, BestMatch("abcdefghij", candidates))
}

func TestBestMatch_TieKeepsFirstCandidate(t *testing.T) {
	candidates := []Candidate{
		{ID: 10, Name: "Pub Quiz Crew"},
		{ID: 20, Name: "Pub Quiz Crew"},
	}
	got := BestMatch("Pub Quiz Crew", candidates)
	if assert.NotNil(t, got) {
		assert.Equal(t, 10, *got)
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	assert.Nil(t, BestMatch("anything", nil))
}
