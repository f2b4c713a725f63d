package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the module embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the embedded version with surrounding whitespace removed.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command and module identifier. It appears in help text and
	// default config paths.
	Name = "modulista"
	// Description is a short summary used in help output.
	Description = "Block-language item store and renderer"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
