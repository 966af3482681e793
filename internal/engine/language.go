package engine

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// extensionLanguages maps file extensions to language identifiers. The
// file extension outranks node metadata because parsers sometimes stamp
// nodes with the grammar name rather than the language.
var extensionLanguages = map[string]string{
	".ts":    "typescript",
	".tsx":   "typescript",
	".mts":   "typescript",
	".cts":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".py":    "python",
	".pyi":   "python",
	".java":  "java",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".php":   "php",
	".rb":    "ruby",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".swift": "swift",
	".dart":  "dart",
	".scala": "scala",
	".lua":   "lua",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
}

// resolveLanguage determines a node's language: file extension first, then
// the node's own language fields, defaulting to javascript.
func resolveLanguage(node *types.SyntaxNode, filePath string) string {
	if filePath != "" {
		ext := strings.ToLower(filepath.Ext(filePath))
		if lang, ok := extensionLanguages[ext]; ok {
			return lang
		}
	}
	if node.Language != "" {
		return strings.ToLower(node.Language)
	}
	if meta := node.MetadataLanguage(); meta != "" {
		return strings.ToLower(meta)
	}
	return "javascript"
}
