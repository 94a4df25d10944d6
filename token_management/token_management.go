package token_management

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/morler/codeassist/constants/lipgloss"
	"github.com/morler/codeassist/embed_data"
	"github.com/morler/codeassist/token_management/contracts"
)

// TokenManager implementation
type tokenManager struct {
	usedToken int
	models    Models
}

type details struct {
	MaxTokens                  int     `json:"max_tokens"`
	MaxInputTokens             int     `json:"max_input_tokens"`
	MaxOutputTokens            int     `json:"max_output_tokens"`
	InputCostPerMillionTokens  float64 `json:"input_cost_per_million_tokens,omitempty"`
	OutputCostPerMillionTokens float64 `json:"output_cost_per_million_tokens,omitempty"`
	Mode                       string  `json:"mode"`
}

type Models struct {
	ModelDetails map[string]details `json:"models"`
}

// NewTokenManager creates a new token manager. It panics when the embedded model table is malformed.
func NewTokenManager() contracts.ITokenManagement {
	models, err := loadModelDetails(embed_data.ModelDetails)
	if err != nil {
		panic(err)
	}

	return &tokenManager{models: models}
}

func loadModelDetails(data []byte) (Models, error) {
	models := Models{ModelDetails: make(map[string]details)}
	if err := json.Unmarshal(data, &models); err != nil {
		return Models{}, fmt.Errorf("error unmarshalling model details: %w", err)
	}
	if len(models.ModelDetails) == 0 {
		return Models{}, errors.New("model details table is empty")
	}
	return models, nil
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(tokens int) {
	if tokens > 0 {
		tm.usedToken += tokens
	}
}

func (tm *tokenManager) GetTotalTokens() int {
	return tm.usedToken
}

func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
}

func (tm *tokenManager) DisplayTokens(chatModel string) {
	cost := tm.CalculateCost(chatModel, tm.usedToken)

	tokenInfo := fmt.Sprintf("Token Used: %d - Estimated Input Cost: %.6f $ - Model: %s", tm.usedToken, cost, chatModel)

	fmt.Println(lipgloss.BoxStyle.Render(tokenInfo))
}

// CalculateCost prices input tokens for the model; unknown models cost 0.
func (tm *tokenManager) CalculateCost(modelName string, inputToken int) float64 {
	modelDetails, err := tm.getModelDetails(modelName)
	if err != nil {
		return 0
	}
	return float64(inputToken) * modelDetails.InputCostPerMillionTokens / 1000000.0
}

// MaxInputTokens returns the model's input window, or 0 when unknown.
func (tm *tokenManager) MaxInputTokens(modelName string) int {
	modelDetails, err := tm.getModelDetails(modelName)
	if err != nil {
		return 0
	}
	return modelDetails.MaxInputTokens
}

func (tm *tokenManager) getModelDetails(modelName string) (details, error) {
	model, exists := tm.models.ModelDetails[strings.ToLower(modelName)]
	if !exists {
		return details{}, fmt.Errorf("model details with name '%s' not found", modelName)
	}
	return model, nil
}
