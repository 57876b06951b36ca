package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEducationOrQualification_NoRequirement(t *testing.T) {
	engine := newTestEngine(&fixedSim{})

	result, err := engine.ScoreEducationOrQualification(context.Background(), "", []string{"BSc Computer Science", "AWS SA"}, "education")
	require.NoError(t, err)

	assert.Equal(t, 70.0, result.Score)
	assert.Equal(t, "BSc Computer Science", result.BestCandidateMatch)
	assert.Contains(t, result.Note, "does not specify education")
}

func TestScoreEducationOrQualification_CandidateMissing(t *testing.T) {
	engine := newTestEngine(&fixedSim{})

	result, err := engine.ScoreEducationOrQualification(context.Background(), "Bachelor's degree", nil, "education")
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.Score)
	assert.Empty(t, result.BestCandidateMatch)
}

func TestScoreEducationOrQualification_ExactContainment(t *testing.T) {
	engine := newTestEngine(&fixedSim{idx: 0, sim: 0.1})

	result, err := engine.ScoreEducationOrQualification(context.Background(), "AWS Solutions Architect", []string{"aws  solutions architect"}, "qualification")
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Score)
}

func TestScoreEducationOrQualification_SemanticTiers(t *testing.T) {
	tests := []struct {
		name      string
		sim       float64
		wantScore float64
	}{
		{"at match threshold", 0.80, 100.0},
		{"partial band upper edge", 0.79, 70.0},
		{"partial band lower edge", 0.51, 70.0},
		{"exactly at partial floor", 0.50, 0.0},
		{"below floor", 0.30, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(&fixedSim{idx: 0, sim: tt.sim})
			result, err := engine.ScoreEducationOrQualification(context.Background(), "MSc Statistics", []string{"BSc Mathematics"}, "education")
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, "BSc Mathematics", result.BestCandidateMatch)
		})
	}
}
