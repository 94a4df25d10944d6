package contracts

import "github.com/morler/codeassist/request_assembler/models"

// ITokenEstimator gives an advisory token count for a request.
type ITokenEstimator interface {
	EstimateTokens(segments []models.Segment, model string) (int, error)
}

type ITokenManagement interface {
	UsedTokens(tokens int)
	GetTotalTokens() int
	CalculateCost(modelName string, inputToken int) float64
	MaxInputTokens(modelName string) int
	DisplayTokens(chatModel string)
	ClearToken()
}
