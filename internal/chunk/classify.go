package chunk

import (
	"path/filepath"
	"strings"
)

var kindByExtension = map[string]Kind{
	".md":       KindDoc,
	".markdown": KindDoc,
	".mdx":      KindDoc,
	".rst":      KindDoc,
	".txt":      KindDoc,
	".json":     KindConfig,
	".yaml":     KindConfig,
	".yml":      KindConfig,
	".toml":     KindConfig,
	".ini":      KindConfig,
	".sh":       KindScript,
	".bash":     KindScript,
	".zsh":      KindScript,
}

// Classify maps a file path to a Kind by extension. Unknown
// extensions classify as code, the broadest category.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindCode
}
