package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [skill-name...]",
	Short: "Install skills from this repository into your skills directory",
	Long: `Install copies skill bundles from the repository's skills/ tree into the
user-level skills directory, replacing any previous copy wholesale. A
target that is a symbolic link is replaced with a real copy.

With no arguments every registered skill is installed. Names may be glob
patterns matched against the registry.

Examples:
  skillsync install
  skillsync install openserv-sdk
  skillsync install 'openserv-*' payments`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSyncer(cmd)

		if err := s.EnsureSkillsDir(); err != nil {
			presenter.Error(err, "Failed to create skills directory")
			os.Exit(1)
		}

		names := registry.Expand(args)
		var errs *multierror.Error

		for _, name := range names {
			res, err := s.Install(name)
			if err != nil {
				errs = multierror.Append(errs, err)
				presenter.Error(err, fmt.Sprintf("Failed to install skill '%s'", name))
				continue
			}

			if res.ReplacedSymlink {
				presenter.Warning(fmt.Sprintf("Skill '%s' was symlinked, replacing with a copy", name))
			}
			presenter.Success(fmt.Sprintf("Installed skill '%s' to %s", name, res.Target))
		}

		printSummary(len(names), errs)
		if errs.ErrorOrNil() != nil {
			os.Exit(1)
		}
	},
}

func init() {
	addSyncFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}
