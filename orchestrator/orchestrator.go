package orchestrator

import (
	"context"
	"errors"

	"github.com/morler/codeassist/app_errors"
	collector_models "github.com/morler/codeassist/code_collector/models"
	logger "github.com/morler/codeassist/logger/contracts"
	provider_contracts "github.com/morler/codeassist/providers/contracts"
	"github.com/morler/codeassist/providers/models"
	assembler_contracts "github.com/morler/codeassist/request_assembler/contracts"
	request_models "github.com/morler/codeassist/request_assembler/models"
	token_contracts "github.com/morler/codeassist/token_management/contracts"
)

// Orchestrator drives assembly, estimation and delivery for a collected file set.
// Requests are handled strictly one after another.
type Orchestrator struct {
	Assembler       assembler_contracts.IRequestAssembler
	Estimator       token_contracts.ITokenEstimator
	TokenManagement token_contracts.ITokenManagement
	Client          provider_contracts.IDeliveryClient
	Model           string
	Log             logger.ILogger
	// OnDelivered, when set, is called after every successful delivery.
	OnDelivered func(result models.DeliveryResult)
}

// Summary aggregates the outcome of a run.
type Summary struct {
	TotalTokens int
	Succeeded   int
	Failed      int
	Skipped     int
	Written     []string
}

func (s *Summary) add(other Summary) {
	s.TotalTokens += other.TotalTokens
	s.Succeeded += other.Succeeded
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Written = append(s.Written, other.Written...)
}

func (s *Summary) record(result models.DeliveryResult) {
	if !result.Success {
		s.Failed++
		return
	}
	s.Succeeded++
	s.TotalTokens += result.Tokens
	s.Written = append(s.Written, result.WrittenPath)
}

// Run executes the pipelines selected by mode: README first, then analysis.
func (o *Orchestrator) Run(ctx context.Context, mode TaskMode, fileSet *collector_models.FileSet) Summary {
	var summary Summary

	if mode.runsReadme() {
		summary.add(o.RunReadme(ctx, fileSet))
	}
	if mode.runsAnalysis() {
		summary.add(o.RunAnalysis(ctx, fileSet))
	}

	o.Log.Info("-------------------")
	o.Log.Info("in total: %d tokens used for all requests", summary.TotalTokens)
	o.Log.Info("all actions finished")

	return summary
}

// RunReadme builds and sends the single project README request.
func (o *Orchestrator) RunReadme(ctx context.Context, fileSet *collector_models.FileSet) Summary {
	var summary Summary

	request, err := o.Assembler.BuildReadmeRequest(fileSet)
	if err != nil {
		if errors.Is(err, app_errors.ErrMissingPrompt) {
			o.Log.Warning("> %v", err)
		} else {
			o.Log.Warning("> README request aborted: %v", err)
			summary.Failed++
		}
		return summary
	}

	summary.record(o.deliver(ctx, request))
	return summary
}

// RunAnalysis sends one request per file. A file that cannot be read or delivered is
// logged and the loop moves on.
func (o *Orchestrator) RunAnalysis(ctx context.Context, fileSet *collector_models.FileSet) Summary {
	var summary Summary

	for _, entry := range fileSet.Entries() {
		request, err := o.Assembler.BuildAnalysisRequest(entry)
		switch {
		case errors.Is(err, app_errors.ErrMissingPrompt):
			o.Log.Warning("> %v", err)
			return summary
		case errors.Is(err, app_errors.ErrEmptyContent):
			o.Log.Info("> skipping empty file: %s", entry.Path())
			summary.Skipped++
			continue
		case err != nil:
			o.Log.Warning("> skipping %s: %v", entry.Path(), err)
			summary.Failed++
			continue
		}

		o.Log.Info("> analyzing %s", entry.Path())
		summary.record(o.deliver(ctx, request))
	}

	return summary
}

// deliver estimates, sends and, on success, credits the request's tokens.
func (o *Orchestrator) deliver(ctx context.Context, request *request_models.Request) models.DeliveryResult {
	tokens := o.estimate(request)

	result := o.Client.Deliver(ctx, request.SavePath, request.Segments)
	if !result.Success {
		return result
	}

	result.Tokens = tokens
	o.TokenManagement.UsedTokens(tokens)
	if o.OnDelivered != nil {
		o.OnDelivered(result)
	}
	return result
}

// estimate never fails the request; an unknown model degrades to 0.
func (o *Orchestrator) estimate(request *request_models.Request) int {
	tokens, err := o.Estimator.EstimateTokens(request.Segments, o.Model)
	if err != nil {
		o.Log.Warning("> cannot count request tokens: %v", err)
		return 0
	}
	o.Log.Info("> request tokens: %d", tokens)

	if limit := o.TokenManagement.MaxInputTokens(o.Model); limit > 0 && tokens > limit {
		o.Log.Warning("> request estimate %d exceeds the %d input tokens of %s; sending unchanged", tokens, limit, o.Model)
	}
	return tokens
}
