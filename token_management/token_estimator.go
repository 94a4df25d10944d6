package token_management

import (
	"fmt"
	"strings"

	"github.com/morler/codeassist/app_errors"
	"github.com/morler/codeassist/request_assembler/models"
	"github.com/morler/codeassist/token_management/contracts"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

type tiktokenEstimator struct {
	encodings map[string]*tiktoken.Tiktoken
}

// bpeLoader prefers the BPE tables bundled with the binary and downloads the ones
// that are not bundled (cached under TIKTOKEN_CACHE_DIR when set).
type bpeLoader struct {
	offline tiktoken.BpeLoader
	remote  tiktoken.BpeLoader
}

func (l *bpeLoader) LoadTiktokenBpe(tiktokenBpeFile string) (map[string]int, error) {
	ranks, err := l.offline.LoadTiktokenBpe(tiktokenBpeFile)
	if err == nil {
		return ranks, nil
	}
	ranks, remoteErr := l.remote.LoadTiktokenBpe(tiktokenBpeFile)
	if remoteErr != nil {
		return nil, fmt.Errorf("%v; download: %w", err, remoteErr)
	}
	return ranks, nil
}

// NewTokenEstimator returns an estimator backed by tiktoken encodings.
func NewTokenEstimator() contracts.ITokenEstimator {
	tiktoken.SetBpeLoader(&bpeLoader{
		offline: tiktoken_loader.NewOfflineLoader(),
		remote:  tiktoken.NewDefaultBpeLoader(),
	})
	return &tiktokenEstimator{encodings: make(map[string]*tiktoken.Tiktoken)}
}

// EstimateTokens sums the token counts of every segment text for the model's encoding.
func (e *tiktokenEstimator) EstimateTokens(segments []models.Segment, model string) (int, error) {
	encoding, err := e.encodingFor(model)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, segment := range segments {
		total += len(encoding.Encode(segment.Text, nil, nil))
	}
	return total, nil
}

func (e *tiktokenEstimator) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	model = strings.TrimSpace(model)
	if encoding, ok := e.encodings[model]; ok {
		return encoding, nil
	}
	if model == "" {
		return nil, fmt.Errorf("%w: no model configured", app_errors.ErrEstimationUnavailable)
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: model '%s': %v", app_errors.ErrEstimationUnavailable, model, err)
	}
	e.encodings[model] = encoding
	return encoding, nil
}
