package contracts

import (
	"context"

	"github.com/morler/codeassist/providers/models"
	request_models "github.com/morler/codeassist/request_assembler/models"
)

// IDeliveryClient sends one request and writes the reply to savePath on success.
type IDeliveryClient interface {
	Deliver(ctx context.Context, savePath string, segments []request_models.Segment) models.DeliveryResult
}
