package contracts

import (
	collector_models "github.com/morler/codeassist/code_collector/models"
	"github.com/morler/codeassist/request_assembler/models"
)

type IRequestAssembler interface {
	BuildReadmeRequest(fileSet *collector_models.FileSet) (*models.Request, error)
	BuildAnalysisRequest(entry collector_models.Entry) (*models.Request, error)
}
