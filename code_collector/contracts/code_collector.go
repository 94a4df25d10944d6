package contracts

import "github.com/morler/codeassist/code_collector/models"

type ICodeCollector interface {
	CollectFiles(rootDir string) (*models.FileSet, error)
}
