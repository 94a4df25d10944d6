package orchestrator

import (
	"fmt"
	"strings"

	"github.com/morler/codeassist/app_errors"
)

// TaskMode selects which pipelines a run executes.
type TaskMode string

const (
	ModeReadme  TaskMode = "readme"
	ModeAnalyze TaskMode = "analyze"
	ModeAll     TaskMode = "all"
)

// ParseMode validates operator input. Surrounding whitespace is ignored; anything
// other than readme, analyze or all is rejected.
func ParseMode(raw string) (TaskMode, error) {
	switch mode := TaskMode(strings.TrimSpace(raw)); mode {
	case ModeReadme, ModeAnalyze, ModeAll:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: option [%s] not recognized", app_errors.ErrInvalidMode, strings.TrimSpace(raw))
	}
}

func (m TaskMode) runsReadme() bool   { return m == ModeReadme || m == ModeAll }
func (m TaskMode) runsAnalysis() bool { return m == ModeAnalyze || m == ModeAll }
