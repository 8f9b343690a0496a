package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/openserv-labs/skillsync/pkg/skills"
	"github.com/openserv-labs/skillsync/pkg/syncer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [skill-name...]",
	Short: "Import locally edited skills back into this repository",
	Long: `Import copies installed skill bundles from the user-level skills directory
back into the repository root, replacing any existing copy there. A skill
that is symlinked into the skills directory is skipped: the link already
points at live content and there is nothing to bring back.

With no arguments every registered skill is imported. Names may be glob
patterns matched against the registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSyncer(cmd)

		names := registry.Expand(args)
		var errs *multierror.Error

		for _, name := range names {
			res, err := s.Import(name)
			if err != nil {
				errs = multierror.Append(errs, err)
				presenter.Error(err, fmt.Sprintf("Failed to import skill '%s'", name))
				continue
			}

			if res.Status == syncer.StatusSkippedSymlink {
				presenter.Warning(fmt.Sprintf("Skill '%s' is symlinked into %s, skipping import", name, s.SkillsDir()))
				continue
			}

			if err := skills.Validate(res.Target); err != nil {
				presenter.Warning(fmt.Sprintf("Imported skill '%s' has an invalid %s: %v", name, skills.FileName, err))
			}
			presenter.Success(fmt.Sprintf("Imported skill '%s' from %s", name, res.Source))
		}

		printSummary(len(names), errs)
		if errs.ErrorOrNil() != nil {
			os.Exit(1)
		}
	},
}

func init() {
	addSyncFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}
