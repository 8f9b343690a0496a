package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "openserv-sdk")
	writeSkill(t, dir, `---
name: openserv-sdk
description: Calling the OpenServ hosted SDK from agent code
---

# OpenServ SDK

## Instructions
Use the hosted client.
`)

	skill, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "openserv-sdk", skill.Name)
	assert.Equal(t, "Calling the OpenServ hosted SDK from agent code", skill.Description)
	assert.Equal(t, dir, skill.Directory)
	assert.Contains(t, skill.Content, "# OpenServ SDK")
	assert.NotContains(t, skill.Content, "description:")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing name", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "no-name")
		writeSkill(t, dir, `---
description: Missing name field
---

Content here.
`)
		err := Validate(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("missing description", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "no-desc")
		writeSkill(t, dir, `---
name: no-desc
---

Content here.
`)
		err := Validate(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description is required")
	})

	t.Run("no frontmatter", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "plain")
		writeSkill(t, dir, "# Just content\nNo frontmatter here.\n")
		err := Validate(dir)
		require.Error(t, err)
	})

	t.Run("valid bundle", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "ok")
		writeSkill(t, dir, `---
name: ok
description: A complete bundle
---

Body.
`)
		assert.NoError(t, Validate(dir))
	})
}

func TestExtractBodyContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "with frontmatter",
			input: `---
name: test
description: desc
---

# Content

Body text.`,
			expected: `# Content

Body text.`,
		},
		{
			name:     "no frontmatter",
			input:    "# Just content\nNo frontmatter.",
			expected: "# Just content\nNo frontmatter.",
		},
		{
			name: "incomplete frontmatter",
			input: `---
name: test
# No closing ---`,
			expected: `---
name: test
# No closing ---`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractBodyContent(tt.input))
		})
	}
}
