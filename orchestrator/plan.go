package orchestrator

import (
	"strings"

	collector_models "github.com/morler/codeassist/code_collector/models"
	request_models "github.com/morler/codeassist/request_assembler/models"
	"github.com/zeebo/xxh3"
)

// PlanItem describes a request that a run would send.
type PlanItem struct {
	Mode     TaskMode
	SavePath string
	Sources  []string
	Tokens   int
	Cost     float64
	Checksum uint64
	Err      error
}

// Plan assembles the requests for mode without sending anything. The assembler
// should be configured not to create output directories.
func (o *Orchestrator) Plan(mode TaskMode, fileSet *collector_models.FileSet) []PlanItem {
	var items []PlanItem

	if mode.runsReadme() {
		request, err := o.Assembler.BuildReadmeRequest(fileSet)
		items = append(items, o.planItem(ModeReadme, request, err))
	}

	if mode.runsAnalysis() {
		for _, entry := range fileSet.Entries() {
			request, err := o.Assembler.BuildAnalysisRequest(entry)
			item := o.planItem(ModeAnalyze, request, err)
			if request == nil {
				item.Sources = []string{entry.Path()}
			}
			items = append(items, item)
		}
	}

	return items
}

func (o *Orchestrator) planItem(mode TaskMode, request *request_models.Request, err error) PlanItem {
	item := PlanItem{Mode: mode, Err: err}
	if request == nil {
		return item
	}

	item.SavePath = request.SavePath
	item.Sources = request.Sources
	item.Tokens = o.estimate(request)
	item.Cost = o.TokenManagement.CalculateCost(o.Model, item.Tokens)
	item.Checksum = xxh3.HashString(strings.Join(request.Texts(), ""))
	return item
}
