package request_assembler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/morler/codeassist/app_errors"
	collector_models "github.com/morler/codeassist/code_collector/models"
	"github.com/morler/codeassist/config"
	logger "github.com/morler/codeassist/logger/contracts"
	"github.com/morler/codeassist/request_assembler/contracts"
	"github.com/morler/codeassist/request_assembler/models"
	"github.com/morler/codeassist/utils"
)

// Assembler turns collected files into chat requests.
type Assembler struct {
	Root           string
	ReadmePrompt   string
	AnalysisPrompt string
	ReadmeFile     string
	AnalysisDir    string
	ReadPolicy     string
	// SkipOutputDirs leaves the analysis directory alone; used for dry runs.
	SkipOutputDirs bool
	Log            logger.ILogger
}

// NewAssembler builds an assembler rooted at cfg's project directory.
func NewAssembler(cfg *config.Config, log logger.ILogger) *Assembler {
	return &Assembler{
		Root:           cfg.ProjectRoot(),
		ReadmePrompt:   cfg.ReadmePrompt,
		AnalysisPrompt: cfg.AnalysisPrompt,
		ReadmeFile:     cfg.ReadmeFile,
		AnalysisDir:    cfg.AnalysisDir,
		ReadPolicy:     cfg.ReadmeReadPolicy,
		Log:            log,
	}
}

// BuildReadmeRequest builds the single project-wide README request: the README prompt
// followed by one fenced code segment per non-empty file.
func (assembler *Assembler) BuildReadmeRequest(fileSet *collector_models.FileSet) (*models.Request, error) {
	if assembler.ReadmePrompt == "" {
		return nil, fmt.Errorf("%w: no prompt configured for README.md creation, check [readme_prompt] value in config", app_errors.ErrMissingPrompt)
	}

	request := &models.Request{
		Role:     models.UserRole,
		Segments: []models.Segment{{Kind: models.InstructionSegment, Text: assembler.ReadmePrompt}},
		SavePath: filepath.Join(assembler.Root, assembler.ReadmeFile),
	}

	assembler.Log.Info("> combining code into request parts")

	for _, entry := range fileSet.Entries() {
		content, err := readSource(entry.Path())
		if err != nil {
			if assembler.ReadPolicy == config.ReadPolicySkip {
				assembler.Log.Warning("> leaving %s out of the README request: %v", entry.Path(), err)
				continue
			}
			return nil, err
		}
		if content == "" {
			continue
		}

		request.Segments = append(request.Segments, models.Segment{
			Kind: models.FileContentSegment,
			Text: fmt.Sprintf("```%s\n%s\n```", utils.FenceLanguage(entry.Name), content),
		})
		request.Sources = append(request.Sources, entry.Path())
	}

	return request, nil
}

// BuildAnalysisRequest builds the request for one file: the analysis prompt and the raw
// file text in a single segment. Files with no content yield ErrEmptyContent.
func (assembler *Assembler) BuildAnalysisRequest(entry collector_models.Entry) (*models.Request, error) {
	if assembler.AnalysisPrompt == "" {
		return nil, fmt.Errorf("%w: no prompt configured for code analysis, check [analysis_prompt] value in config", app_errors.ErrMissingPrompt)
	}

	content, err := readSource(entry.Path())
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%s: %w", entry.Path(), app_errors.ErrEmptyContent)
	}

	outputDir := filepath.Join(assembler.Root, assembler.AnalysisDir)
	if !assembler.SkipOutputDirs {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create analysis directory: %w", err)
		}
	}

	return &models.Request{
		Role: models.UserRole,
		Segments: []models.Segment{{
			Kind: models.InstructionSegment,
			Text: assembler.AnalysisPrompt + " " + content,
		}},
		SavePath: filepath.Join(outputDir, entry.Stem()+".md"),
		Sources:  []string{entry.Path()},
	}, nil
}

var _ contracts.IRequestAssembler = (*Assembler)(nil)

func readSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &app_errors.FileReadError{Path: path, Err: err}
	}
	if !utf8.Valid(content) {
		return "", &app_errors.FileReadError{Path: path, Err: errors.New("content is not valid UTF-8")}
	}
	return string(content), nil
}
