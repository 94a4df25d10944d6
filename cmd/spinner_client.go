package cmd

import (
	"context"
	"path/filepath"

	provider_contracts "github.com/morler/codeassist/providers/contracts"
	"github.com/morler/codeassist/providers/models"
	request_models "github.com/morler/codeassist/request_assembler/models"
	"github.com/pterm/pterm"
)

// spinnerClient shows a terminal spinner while a request is in flight.
type spinnerClient struct {
	next provider_contracts.IDeliveryClient
}

func (s spinnerClient) Deliver(ctx context.Context, savePath string, segments []request_models.Segment) models.DeliveryResult {
	spinner, err := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).
		Start("Waiting for " + filepath.Base(savePath) + "...")
	if err != nil {
		return s.next.Deliver(ctx, savePath, segments)
	}

	result := s.next.Deliver(ctx, savePath, segments)
	if result.Success {
		spinner.Success("Saved " + filepath.Base(savePath))
	} else {
		spinner.Fail("Request for " + filepath.Base(savePath) + " failed")
	}
	return result
}
