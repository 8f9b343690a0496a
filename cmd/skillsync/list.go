package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/openserv-labs/skillsync/pkg/registry"
	"github.com/openserv-labs/skillsync/pkg/skills"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered skills and their installed state",
	Long: `List every registered skill with its installed state (installed, symlink,
or absent) and the description from the bundle's SKILL.md frontmatter.`,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSyncer(cmd)

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATE\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t-----\t-----------")

		for _, name := range registry.Names {
			state := "absent"
			if info, err := os.Lstat(s.InstalledSkillPath(name)); err == nil {
				switch {
				case info.Mode()&os.ModeSymlink != 0:
					state = "symlink"
				case info.IsDir():
					state = "installed"
				}
			}

			description := ""
			if skill, err := skills.LoadDir(s.RepoSkillPath(name)); err == nil {
				description = skill.Description
				if len(description) > 60 {
					description = description[:57] + "..."
				}
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, state, description)
		}
		tw.Flush()
	},
}

func init() {
	addSyncFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}
