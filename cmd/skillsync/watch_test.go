package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillForPath(t *testing.T) {
	root := filepath.Join("repo", "skills")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"file inside skill", filepath.Join(root, "openserv-sdk", "SKILL.md"), "openserv-sdk"},
		{"nested file", filepath.Join(root, "payments", "reference", "api.md"), "payments"},
		{"skill directory itself", filepath.Join(root, "payments"), "payments"},
		{"skills root", root, ""},
		{"outside the tree", filepath.Join("repo", "README.md"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, skillForPath(root, tt.path))
		})
	}
}

func TestWatchConfigValidate(t *testing.T) {
	config := NewWatchConfig()
	assert.NoError(t, config.Validate())

	config.DebounceTime = -1
	assert.Error(t, config.Validate())
}

func TestGetWatchConfigFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "watch"}
	defaults := NewWatchConfig()
	cmd.Flags().StringSliceP("ignore", "i", defaults.IgnoreDirs, "")
	cmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "")

	require.NoError(t, cmd.Flags().Set("debounce", "250"))
	require.NoError(t, cmd.Flags().Set("ignore", ".git,dist"))

	config := getWatchConfigFromFlags(cmd)
	assert.Equal(t, 250, config.DebounceTime)
	assert.Equal(t, []string{".git", "dist"}, config.IgnoreDirs)
}
