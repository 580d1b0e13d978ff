package curate_test

import (
	"testing"

	"github.com/amonks/journey/curate"
	"github.com/amonks/journey/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreadthPolicy(t *testing.T) {
	for _, tt := range []struct {
		level   int
		profile data.CreativityProfile
	}{
		{1, data.CreativityProfile{Policy: "breadth", UseTopTracks: true}},
		{2, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 3}},
		{3, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 5}},
		{4, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 15}},
		{5, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 15, RecommendationLimit: 25}},
		{6, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 15, RecommendationLimit: 50}},
		{7, data.CreativityProfile{Policy: "breadth", UseTopTracks: true, SimilarArtistBreadth: 10, RecommendationLimit: 50}},
		{8, data.CreativityProfile{Policy: "breadth", SimilarArtistBreadth: 4, RecommendationLimit: 100}},
		{9, data.CreativityProfile{Policy: "breadth", RecommendationLimit: 100}},
		{10, data.CreativityProfile{Policy: "breadth", RecommendationLimit: 20}},
	} {
		profile, err := curate.Breadth.Resolve(tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.profile, profile, "level %d", tt.level)
	}
}

func TestStrictnessPolicy(t *testing.T) {
	for _, tt := range []struct {
		level           int
		topTracks       bool
		recommendations int
	}{
		{1, true, 10},
		{2, true, 10},
		{5, true, 40},
		{6, true, 50},
		{7, false, 60},
		{10, false, 90},
	} {
		profile, err := curate.Strictness.Resolve(tt.level)
		require.NoError(t, err)
		assert.Equal(t, "strictness", profile.Policy)
		assert.Equal(t, tt.topTracks, profile.UseTopTracks, "level %d", tt.level)
		assert.Equal(t, 0, profile.SimilarArtistBreadth, "level %d", tt.level)
		assert.Equal(t, tt.recommendations, profile.RecommendationLimit, "level %d", tt.level)
	}
}

func TestResolveIsPure(t *testing.T) {
	for _, policy := range []curate.Policy{curate.Breadth, curate.Strictness} {
		for level := curate.MinCreativity; level <= curate.MaxCreativity; level++ {
			a, err := policy.Resolve(level)
			require.NoError(t, err)
			b, err := policy.Resolve(level)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	for _, policy := range []curate.Policy{curate.Breadth, curate.Strictness} {
		for _, level := range []int{-1, 0, 11, 100} {
			_, err := policy.Resolve(level)
			assert.ErrorIs(t, err, curate.ErrInvalidArgument, "%s level %d", policy.Name(), level)
		}
	}
}

func TestPolicyByName(t *testing.T) {
	policy, err := curate.PolicyByName("breadth")
	require.NoError(t, err)
	assert.Equal(t, curate.Breadth, policy)

	policy, err = curate.PolicyByName("strictness")
	require.NoError(t, err)
	assert.Equal(t, curate.Strictness, policy)

	_, err = curate.PolicyByName("vibes")
	assert.ErrorIs(t, err, curate.ErrInvalidArgument)
}
