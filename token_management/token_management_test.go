package token_management

import (
	"errors"
	"testing"

	"github.com/morler/codeassist/app_errors"
	"github.com/morler/codeassist/config"
	"github.com/morler/codeassist/request_assembler/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var segments = []models.Segment{
	{Kind: models.InstructionSegment, Text: "Generate complete README.md file code for attached script."},
	{Kind: models.FileContentSegment, Text: "```python\nprint(1)\n```"},
}

func TestEstimateTokens_Deterministic(t *testing.T) {
	estimator := NewTokenEstimator()

	first, err := estimator.EstimateTokens(segments, "gpt-4")
	require.NoError(t, err)
	assert.Greater(t, first, 0)

	for i := 0; i < 5; i++ {
		again, err := estimator.EstimateTokens(segments, "gpt-4")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	fresh, err := NewTokenEstimator().EstimateTokens(segments, "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, first, fresh)
}

func TestEstimateTokens_DefaultModel(t *testing.T) {
	tokens, err := NewTokenEstimator().EstimateTokens(segments, config.DefaultConfig.Model)

	require.NoError(t, err)
	assert.Greater(t, tokens, 0)
}

type stubLoader struct {
	ranks map[string]int
	err   error
	calls int
}

func (s *stubLoader) LoadTiktokenBpe(string) (map[string]int, error) {
	s.calls++
	return s.ranks, s.err
}

func TestBpeLoader_FallsBackWhenNotBundled(t *testing.T) {
	offline := &stubLoader{err: errors.New("open o200k_base.tiktoken: file does not exist")}
	remote := &stubLoader{ranks: map[string]int{"a": 0}}
	loader := &bpeLoader{offline: offline, remote: remote}

	ranks, err := loader.LoadTiktokenBpe("o200k_base.tiktoken")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 0}, ranks)
	assert.Equal(t, 1, remote.calls)

	bundled := &bpeLoader{offline: &stubLoader{ranks: map[string]int{"b": 1}}, remote: remote}
	_, err = bundled.LoadTiktokenBpe("cl100k_base.tiktoken")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.calls)

	remote.err = errors.New("no network")
	_, err = loader.LoadTiktokenBpe("o200k_base.tiktoken")
	assert.ErrorContains(t, err, "file does not exist")
	assert.ErrorContains(t, err, "no network")
}

func TestEstimateTokens_SumsSegments(t *testing.T) {
	estimator := NewTokenEstimator()

	total, err := estimator.EstimateTokens(segments, "gpt-4")
	require.NoError(t, err)

	sum := 0
	for _, segment := range segments {
		n, err := estimator.EstimateTokens([]models.Segment{segment}, "gpt-4")
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, sum, total)

	empty, err := estimator.EstimateTokens(nil, "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, 0, empty)
}

func TestEstimateTokens_UnknownModel(t *testing.T) {
	estimator := NewTokenEstimator()

	count, err := estimator.EstimateTokens(segments, "definitely-not-a-model")
	assert.Equal(t, 0, count)
	assert.ErrorIs(t, err, app_errors.ErrEstimationUnavailable)

	_, err = estimator.EstimateTokens(segments, "")
	assert.ErrorIs(t, err, app_errors.ErrEstimationUnavailable)
}

func TestTokenManager_Accumulates(t *testing.T) {
	tm := NewTokenManager()

	tm.UsedTokens(120)
	tm.UsedTokens(0)
	tm.UsedTokens(-5)
	tm.UsedTokens(30)
	assert.Equal(t, 150, tm.GetTotalTokens())

	tm.ClearToken()
	assert.Equal(t, 0, tm.GetTotalTokens())
}

func TestTokenManager_CostAndLimits(t *testing.T) {
	tm := NewTokenManager()

	assert.InDelta(t, 2.5, tm.CalculateCost("gpt-4o", 1000000), 1e-9)
	assert.InDelta(t, 2.5, tm.CalculateCost("GPT-4o", 1000000), 1e-9)
	assert.Equal(t, 0.0, tm.CalculateCost("unknown", 1000))
	assert.Equal(t, 128000, tm.MaxInputTokens("gpt-4o"))
	assert.Equal(t, 0, tm.MaxInputTokens("unknown"))
}

func TestLoadModelDetails(t *testing.T) {
	models, err := loadModelDetails([]byte(`{"models":{"gpt-4":{"max_input_tokens":8192}}}`))
	require.NoError(t, err)
	assert.Equal(t, 8192, models.ModelDetails["gpt-4"].MaxInputTokens)

	_, err = loadModelDetails([]byte(`{"models":`))
	assert.Error(t, err)

	_, err = loadModelDetails([]byte(`{}`))
	assert.Error(t, err)

	assert.NotPanics(t, func() { NewTokenManager() })
}
