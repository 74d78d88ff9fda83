package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestParseScoresKeepsKeyOrderAndTypes(t *testing.T) {
	scores, err := parseScores([]byte(`{"joy": 2, "calm": 0.25, "big": 5000000000, "tags": ["a", 1], "ok": true, "none": null, "nested": {"x": 1e2}}`))
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "joy", Value: int32(2)},
		{Key: "calm", Value: 0.25},
		{Key: "big", Value: int64(5000000000)},
		{Key: "tags", Value: bson.A{"a", int32(1)}},
		{Key: "ok", Value: true},
		{Key: "none", Value: nil},
		{Key: "nested", Value: bson.D{{Key: "x", Value: 100.0}}},
	}, scores)
}

func TestParseScoresNonFiniteNumbers(t *testing.T) {
	scores, err := parseScores([]byte(`{"joy": NaN, "calm": 0.2, "up": Infinity, "down": [-Infinity], "text": "NaN stays a string"}`))
	require.NoError(t, err)
	require.Len(t, scores, 5)

	assert.Equal(t, "joy", scores[0].Key)
	assert.True(t, math.IsNaN(scores[0].Value.(float64)))
	assert.Equal(t, 0.2, scores[1].Value)
	assert.True(t, math.IsInf(scores[2].Value.(float64), 1))
	assert.Equal(t, bson.A{math.Inf(-1)}, scores[3].Value)
	assert.Equal(t, "NaN stays a string", scores[4].Value)
}

func TestParseScoresDuplicateKeysLastWins(t *testing.T) {
	scores, err := parseScores([]byte(`{"joy": 1, "calm": 0, "joy": 2}`))
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "joy", Value: int32(2)},
		{Key: "calm", Value: int32(0)},
	}, scores)
}

func TestParseScoresDollarKeysAreLiteral(t *testing.T) {
	scores, err := parseScores([]byte(`{"score": {"$numberLong": "7"}, "id": {"$oid": "abc"}}`))
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "score", Value: bson.D{{Key: "$numberLong", Value: "7"}}},
		{Key: "id", Value: bson.D{{Key: "$oid", Value: "abc"}}},
	}, scores)
}

func TestParseScoresRejectsMalformedInput(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      ``,
		"blank":      "  \n",
		"array":      `[1, 2]`,
		"number":     `3`,
		"truncated":  `{"joy": `,
		"extra data": `{"joy": 1} {}`,
		"bare word":  `{"joy": nope}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseScores([]byte(content))
			assert.Error(t, err)
		})
	}
}
