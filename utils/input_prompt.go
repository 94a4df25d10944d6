package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/morler/codeassist/constants/lipgloss"
)

// ModePrompt asks the operator for a task and returns the trimmed answer.
// End of input is treated as an empty answer.
func ModePrompt(reader *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, lipgloss.BlueSky.Render("Chosen task [readme / analyze / all]: "))

	userInput, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return strings.TrimSpace(userInput), nil
}
