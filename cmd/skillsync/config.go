package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/syncer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addSyncFlags registers the location flags shared by every sync command.
func addSyncFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo", ".", "Repository root containing the skills/ tree")
	cmd.Flags().String("skills-dir", "", "User-level skills directory (default ~/.openserv/skills)")
}

// getSyncConfigFromFlags builds the syncer config from the config file and
// environment (via viper), with explicit flags taking precedence.
func getSyncConfigFromFlags(cmd *cobra.Command) syncer.Config {
	config := syncer.Config{RepoRoot: "."}

	// Config file / SKILLSYNC_* env values first
	if err := mapstructure.Decode(viper.AllSettings(), &config); err != nil {
		config = syncer.Config{RepoRoot: "."}
	}
	if config.RepoRoot == "" {
		config.RepoRoot = "."
	}

	if cmd.Flags().Changed("repo") {
		if repo, err := cmd.Flags().GetString("repo"); err == nil {
			config.RepoRoot = repo
		}
	}
	if cmd.Flags().Changed("skills-dir") {
		if dir, err := cmd.Flags().GetString("skills-dir"); err == nil {
			config.SkillsDir = dir
		}
	}

	return config
}

func newSyncer(cmd *cobra.Command) *syncer.Syncer {
	s, err := syncer.New(getSyncConfigFromFlags(cmd))
	if err != nil {
		presenter.Error(err, "Failed to resolve skills directory")
		os.Exit(1)
	}
	return s
}

// printSummary emits the final per-run summary line.
func printSummary(total int, errs *multierror.Error) {
	presenter.Info(fmt.Sprintf("%d skill(s) processed, %d error(s)", total, errorCount(errs)))
}
