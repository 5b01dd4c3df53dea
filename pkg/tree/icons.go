package tree

import "strings"

const (
	DirectoryIcon = "📁"
	DefaultIcon   = "📄"
)

var fileIcons = map[string]string{
	"js":         "📄",
	"ts":         "📄",
	"jsx":        "⚛️",
	"tsx":        "⚛️",
	"json":       "📋",
	"md":         "📝",
	"yml":        "⚙️",
	"yaml":       "⚙️",
	"html":       "🌐",
	"css":        "🎨",
	"scss":       "🎨",
	"sass":       "🎨",
	"py":         "🐍",
	"java":       "☕",
	"cpp":        "⚡",
	"c":          "⚡",
	"go":         "🐹",
	"rs":         "🦀",
	"php":        "🐘",
	"rb":         "💎",
	"sh":         "🐚",
	"dockerfile": "🐳",
	"gitignore":  "🚫",
	"env":        "🔐",
	"lock":       "🔒",
}

// FileIcon resolves the icon for a file name from its lowercased extension.
// Names without a dot get the default icon.
func FileIcon(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return DefaultIcon
	}
	if icon, ok := fileIcons[strings.ToLower(name[idx+1:])]; ok {
		return icon
	}
	return DefaultIcon
}
