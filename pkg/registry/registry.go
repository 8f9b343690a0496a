// Package registry holds the fixed set of skill bundles this repository
// ships and resolves command-line name arguments against it.
package registry

import (
	"github.com/gobwas/glob"
)

// Names is the ordered list of every skill bundle the tool knows about.
// Operations invoked without arguments process this list in order.
var Names = []string{
	"openserv-platform",
	"openserv-sdk",
	"workflow-builder",
	"agent-registration",
	"payments",
}

// Contains reports whether name is a registered skill.
func Contains(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Expand resolves name arguments into the list of skills to process.
//
// With no arguments the full registry is returned in registry order. Each
// argument may be a glob pattern; matches are added in registry order. An
// argument matching nothing is passed through verbatim so that the per-item
// not-found reporting fires for it. Duplicates keep their first position.
func Expand(args []string) []string {
	if len(args) == 0 {
		return append([]string(nil), Names...)
	}

	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, arg := range args {
		matched := false
		if g, err := glob.Compile(arg); err == nil {
			for _, name := range Names {
				if g.Match(name) {
					matched = true
					add(name)
				}
			}
		}
		if !matched {
			add(arg)
		}
	}

	return out
}
