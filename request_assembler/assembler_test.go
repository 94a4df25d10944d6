package request_assembler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/morler/codeassist/app_errors"
	collector_models "github.com/morler/codeassist/code_collector/models"
	"github.com/morler/codeassist/config"
	"github.com/morler/codeassist/logger"
	"github.com/morler/codeassist/request_assembler/models"
	"github.com/morler/codeassist/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(root string) *Assembler {
	return &Assembler{
		Root:           root,
		ReadmePrompt:   "Write a README.",
		AnalysisPrompt: "Review this script:",
		ReadmeFile:     "README.md",
		AnalysisDir:    "AI analysis",
		ReadPolicy:     config.ReadPolicyAbort,
		Log:            logger.Nop(),
	}
}

func fixture(t *testing.T, files map[string]string) (string, *collector_models.FileSet) {
	t.Helper()
	root := t.TempDir()
	fileSet := collector_models.NewFileSet()
	for _, name := range []string{"a.py", "empty.py", "b.sql"} {
		content, ok := files[name]
		if !ok {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
		fileSet.Add(root, name)
	}
	return root, fileSet
}

func TestBuildReadmeRequest(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)", "empty.py": "", "b.sql": "SELECT 1"})
	assembler := newTestAssembler(root)

	request, err := assembler.BuildReadmeRequest(fileSet)
	require.NoError(t, err)

	assert.Equal(t, models.UserRole, request.Role)
	assert.Equal(t, filepath.Join(root, "README.md"), request.SavePath)
	require.Len(t, request.Segments, 3)
	assert.Equal(t, models.Segment{Kind: models.InstructionSegment, Text: "Write a README."}, request.Segments[0])
	assert.Equal(t, models.FileContentSegment, request.Segments[1].Kind)
	assert.Equal(t, "```"+utils.FenceLanguage("a.py")+"\nprint(1)\n```", request.Segments[1].Text)
	assert.True(t, strings.HasSuffix(request.Segments[2].Text, "\nSELECT 1\n```"))
	assert.Equal(t, []string{filepath.Join(root, "a.py"), filepath.Join(root, "b.sql")}, request.Sources)
}

func TestBuildReadmeRequest_MissingPrompt(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)"})
	assembler := newTestAssembler(root)
	assembler.ReadmePrompt = ""

	request, err := assembler.BuildReadmeRequest(fileSet)
	assert.Nil(t, request)
	assert.ErrorIs(t, err, app_errors.ErrMissingPrompt)
}

func TestBuildReadmeRequest_ReadFailurePolicy(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)", "b.sql": "SELECT 1"})
	require.NoError(t, os.Remove(filepath.Join(root, "a.py")))

	t.Run("abort", func(t *testing.T) {
		assembler := newTestAssembler(root)

		request, err := assembler.BuildReadmeRequest(fileSet)
		assert.Nil(t, request)

		var readErr *app_errors.FileReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, filepath.Join(root, "a.py"), readErr.Path)
	})

	t.Run("skip", func(t *testing.T) {
		rec := &logger.Recorder{}
		assembler := newTestAssembler(root)
		assembler.ReadPolicy = config.ReadPolicySkip
		assembler.Log = rec

		request, err := assembler.BuildReadmeRequest(fileSet)
		require.NoError(t, err)
		require.Len(t, request.Segments, 2)
		assert.Contains(t, request.Segments[1].Text, "SELECT 1")
		assert.True(t, rec.Contains("warning", "a.py"))
	})
}

func TestBuildAnalysisRequest(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)", "b.sql": "SELECT 1"})
	assembler := newTestAssembler(root)

	entries := fileSet.Entries()
	require.Len(t, entries, 2)

	first, err := assembler.BuildAnalysisRequest(entries[0])
	require.NoError(t, err)
	second, err := assembler.BuildAnalysisRequest(entries[1])
	require.NoError(t, err)

	assert.Equal(t, []models.Segment{{Kind: models.InstructionSegment, Text: "Review this script: print(1)"}}, first.Segments)
	assert.Equal(t, filepath.Join(root, "AI analysis", "a.md"), first.SavePath)
	assert.Equal(t, filepath.Join(root, "AI analysis", "b.md"), second.SavePath)
	assert.Equal(t, []string{"Review this script: SELECT 1"}, second.Texts())

	info, err := os.Stat(filepath.Join(root, "AI analysis"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBuildAnalysisRequest_EmptyFileBuildsNothing(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"empty.py": ""})
	assembler := newTestAssembler(root)

	request, err := assembler.BuildAnalysisRequest(fileSet.Entries()[0])
	assert.Nil(t, request)
	assert.ErrorIs(t, err, app_errors.ErrEmptyContent)
}

func TestBuildAnalysisRequest_Errors(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)"})
	entry := fileSet.Entries()[0]

	assembler := newTestAssembler(root)
	assembler.AnalysisPrompt = ""
	_, err := assembler.BuildAnalysisRequest(entry)
	assert.ErrorIs(t, err, app_errors.ErrMissingPrompt)

	require.NoError(t, os.WriteFile(entry.Path(), []byte{0xff, 0xfe, 0x00}, 0644))
	_, err = newTestAssembler(root).BuildAnalysisRequest(entry)
	var readErr *app_errors.FileReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestBuildAnalysisRequest_SkipOutputDirs(t *testing.T) {
	root, fileSet := fixture(t, map[string]string{"a.py": "print(1)"})
	assembler := newTestAssembler(root)
	assembler.SkipOutputDirs = true

	request, err := assembler.BuildAnalysisRequest(fileSet.Entries()[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "AI analysis", "a.md"), request.SavePath)
	assert.NoDirExists(t, filepath.Join(root, "AI analysis"))
}

func TestNewAssembler_FromConfig(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig
	cfg.ProjectDir = root

	assembler := NewAssembler(&cfg, logger.Nop())

	assert.Equal(t, root, assembler.Root)
	assert.Equal(t, cfg.ReadmePrompt, assembler.ReadmePrompt)
	assert.Equal(t, "AI analysis", assembler.AnalysisDir)
	assert.Equal(t, config.ReadPolicyAbort, assembler.ReadPolicy)
}
