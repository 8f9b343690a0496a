package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/openserv-labs/skillsync/pkg/presenter"
	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [skill-name...]",
	Short: "Show drift between repository and installed skills",
	Long: `Diff compares the repository copy of each skill with its installed copy
and prints a unified diff of any drift, repository side first. Use it to
decide whether install (push repository content out) or import (bring
local edits back) is the right direction.

Exits non-zero when any skill has drifted or failed to compare.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := newSyncer(cmd)

		names := registry.Expand(args)
		var errs *multierror.Error
		drifted := 0

		for _, name := range names {
			out, err := s.Diff(name)
			if err != nil {
				errs = multierror.Append(errs, err)
				presenter.Error(err, fmt.Sprintf("Failed to diff skill '%s'", name))
				continue
			}

			if out == "" {
				presenter.Success(fmt.Sprintf("Skill '%s' is in sync", name))
				continue
			}

			drifted++
			presenter.Section(fmt.Sprintf("Drift in skill '%s'", name))
			fmt.Print(out)
			presenter.Separator()
		}

		presenter.Info(fmt.Sprintf("%d skill(s) compared, %d drifted, %d error(s)", len(names), drifted, errorCount(errs)))
		if drifted > 0 || errs.ErrorOrNil() != nil {
			os.Exit(1)
		}
	},
}

func errorCount(errs *multierror.Error) int {
	if errs == nil {
		return 0
	}
	return len(errs.Errors)
}

func init() {
	addSyncFlags(diffCmd)
	rootCmd.AddCommand(diffCmd)
}
