package utils

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// FenceLanguage returns the code fence tag for a file name, or "" when no lexer knows it.
func FenceLanguage(fileName string) string {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if len(config.Aliases) > 0 {
		return config.Aliases[0]
	}
	return strings.ToLower(config.Name)
}

// RenderMarkdown writes content to w with terminal syntax highlighting.
func RenderMarkdown(w io.Writer, content string, theme string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return quick.Highlight(w, content, "markdown", "terminal256", theme)
}
