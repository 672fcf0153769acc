// Package language maps files to semantic type tags.
//
// Classification is a deterministic lookup: exact file names first
// (Dockerfile, LICENSE), then extension, then a shebang sniff. Files
// matching no rule degrade to the generic text tag; classification
// never fails.
package language

import (
	"path"
	"strings"
)

// Tag is the classifier's type label for a file.
type Tag string

const (
	TagPython     Tag = "python"
	TagMarkdown   Tag = "markdown"
	TagDockerfile Tag = "dockerfile"
	TagLicense    Tag = "license"
	TagText       Tag = "text"
)

// byName maps exact base names, checked before extensions.
var byName = map[string]Tag{
	"Dockerfile":    TagDockerfile,
	"Containerfile": TagDockerfile,
	"LICENSE":       TagLicense,
	"LICENCE":       TagLicense,
	"COPYING":       TagLicense,
}

// byExt maps lowercase extensions to tags.
var byExt = map[string]Tag{
	".py":       TagPython,
	".md":       TagMarkdown,
	".markdown": TagMarkdown,
	".txt":      TagText,
}

// Classify returns the tag for a file. relPath uses forward slashes;
// content is the decoded file content, used only for the shebang check.
// Binary files are excluded before classification and never reach here.
func Classify(relPath string, content string) Tag {
	base := path.Base(relPath)
	if tag, ok := byName[base]; ok {
		return tag
	}
	// "LICENSE.md" and friends still count as licenses.
	if stem, _, found := strings.Cut(base, "."); found {
		if tag, ok := byName[stem]; ok && tag == TagLicense {
			return tag
		}
	}

	if tag, ok := byExt[strings.ToLower(path.Ext(base))]; ok {
		return tag
	}

	if isPythonShebang(content) {
		return TagPython
	}
	return TagText
}

// isPythonShebang reports whether the first line is a python interpreter
// shebang, e.g. "#!/usr/bin/env python3".
func isPythonShebang(content string) bool {
	if !strings.HasPrefix(content, "#!") {
		return false
	}
	first, _, _ := strings.Cut(content, "\n")
	return strings.Contains(first, "python")
}
