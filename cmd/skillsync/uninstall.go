package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/openserv-labs/skillsync/pkg/syncer"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [skill-name...]",
	Short: "Remove installed skills from your skills directory",
	Long: `Uninstall removes skill bundles from the user-level skills directory. The
repository is never touched. A skill installed as a symbolic link loses the
link only, not the link's target. An already absent skill is not an error.

With no arguments every registered skill is removed. Names may be glob
patterns matched against the registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSyncer(cmd)

		if !s.SkillsDirExists() {
			presenter.Info(fmt.Sprintf("Skills directory %s does not exist, nothing to uninstall", s.SkillsDir()))
			return
		}

		names := registry.Expand(args)
		var errs *multierror.Error

		for _, name := range names {
			res, err := s.Uninstall(name)
			if err != nil {
				errs = multierror.Append(errs, err)
				presenter.Error(err, fmt.Sprintf("Failed to remove skill '%s'", name))
				continue
			}

			switch res.Status {
			case syncer.StatusRemovedSymlink:
				presenter.Success(fmt.Sprintf("Removed skill '%s' (was symlink)", name))
			case syncer.StatusRemoved:
				presenter.Success(fmt.Sprintf("Removed skill '%s' from %s", name, res.Target))
			case syncer.StatusAlreadyAbsent:
				presenter.Info(fmt.Sprintf("Skill '%s' is already absent", name))
			}
		}

		// Uninstall always exits 0: removal problems are reported above
		// but never fail the run.
		printSummary(len(names), errs)
	},
}

func init() {
	addSyncFlags(uninstallCmd)
	rootCmd.AddCommand(uninstallCmd)
}
