// Package skills reads skill bundle metadata. A skill bundle is a directory
// containing a SKILL.md file whose YAML frontmatter names and describes the
// skill for the consuming agent.
package skills

// FileName is the well-known metadata file inside every skill bundle.
const FileName = "SKILL.md"

// Skill holds the metadata of one skill bundle
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description from frontmatter
	Directory   string // Full path to the skill directory
	Content     string // Body of SKILL.md, frontmatter stripped
}
