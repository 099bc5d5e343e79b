// Package crontabcmd implements the crontab command-line tool: list, edit,
// replace and remove a user's crontab, per spec §4.9.
package crontabcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cronkit/systemd-crontab-generator/internal/editor"
	"github.com/cronkit/systemd-crontab-generator/internal/genconfig"
	"github.com/cronkit/systemd-crontab-generator/internal/syslog"
)

type rootFlags struct {
	user   string
	list   bool
	edit   bool
	remove bool
	ignore bool
	show   bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "crontab [file]",
	Short: "Maintain per-user crontab files",
	Long: `crontab edits, lists, replaces or removes a user's crontab.

  crontab FILE      replace crontab from FILE (or "-" for stdin)
  crontab -l        list the crontab
  crontab -e        edit the crontab interactively
  crontab -r        remove the crontab
  crontab -s        list all crontab owners in the spool`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.user, "user", "u", "", "act on behalf of USER (requires privilege)")
	rootCmd.Flags().BoolVarP(&flags.list, "list", "l", false, "list the crontab")
	rootCmd.Flags().BoolVarP(&flags.edit, "edit", "e", false, "edit the crontab")
	rootCmd.Flags().BoolVarP(&flags.remove, "remove", "r", false, "remove the crontab")
	rootCmd.Flags().BoolVarP(&flags.ignore, "ignore", "i", false, "prompt before removing")
	rootCmd.Flags().BoolVarP(&flags.show, "show", "s", false, "list crontab owners")
}

// Execute runs the crontab command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := genconfig.Load()
	if err != nil {
		return err
	}
	ed := editor.New(cfg.UsersCrontabDir, syslog.New())

	switch {
	case flags.show:
		return ed.Show(cmd.OutOrStdout(), cmd.ErrOrStderr())
	case flags.remove:
		u, err := editor.ResolveUser(flags.user)
		if err != nil {
			return err
		}
		return ed.Remove(u, flags.ignore, cmd.InOrStdin(), cmd.OutOrStdout())
	case flags.edit:
		u, err := editor.ResolveUser(flags.user)
		if err != nil {
			return err
		}
		return ed.Edit(u, cmd.ErrOrStderr())
	case flags.list:
		u, err := editor.ResolveUser(flags.user)
		if err != nil {
			return err
		}
		return ed.List(cmd.OutOrStdout(), u)
	case len(args) == 1:
		u, err := editor.ResolveUser(flags.user)
		if err != nil {
			return err
		}
		return ed.Replace(u, args[0], cmd.InOrStdin())
	default:
		return cmd.Help()
	}
}

// Fatalf mirrors the classic crontab tool's "crontab: message" stderr
// convention, used by main when Execute returns an error.
func Fatalf(err error) {
	fmt.Fprintf(os.Stderr, "crontab: %v\n", err)
}
