package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/claudia-app/claudia-vault/internal/adapter"
	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

func (a *cliApp) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   "Set the master password of a new workspace",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readNewPassword(a.prompter, "new master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(pw)

			if err = a.vault.Setup(cmd.Context(), pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Vault set up and unlocked.")
			return nil
		},
	}
}

func (a *cliApp) statusCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the vault session state",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.vault.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), status, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func printStatus(w io.Writer, status models.VaultStatus, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(status)
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(w, "State:        %s\n", status.State)
	fmt.Fprintf(w, "Passwords:    %s\n", openClosed(status.PasswordsUnlocked))
	fmt.Fprintf(w, "Idle timeout: %s\n", status.IdleTimeout)
	if status.PasswordsUnlocked {
		fmt.Fprintf(w, "Passwords remaining: %s\n", status.PasswordsRemaining.Round(time.Second))
	}
	if !status.LastActivity.IsZero() {
		fmt.Fprintf(w, "Last activity: %s\n", status.LastActivity.Local().Format(time.DateTime))
	}
	if run := status.PendingRotation; run != nil {
		fmt.Fprintf(w, "Pending rotation: %s started %s (%d records); run resume-rotation\n",
			run.ID, run.StartedAt.Local().Format(time.DateTime), run.Total)
	}
	return nil
}

func openClosed(open bool) string {
	if open {
		return "unlocked"
	}
	return "locked"
}

func (a *cliApp) unlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "unlock",
		Short:   "Unlock the vault with the master password",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := a.prompter.ReadPassword("master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(pw)

			ok, err := a.vault.Unlock(cmd.Context(), pw)
			if err != nil {
				return err
			}
			if !ok {
				return adapter.ErrUnauthorized
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Vault unlocked.")
			return nil
		},
	}
}

func (a *cliApp) lockCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "lock",
		Short:   "Lock the vault and forget the master password",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.vault.Lock(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Vault locked.")
			return nil
		},
	}
}

func (a *cliApp) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and daemon versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := a.opts.BuildInfo
			fmt.Fprintf(out, "vaultctl %s (%s, %s)\n", orNA(info.BuildVersion()), orNA(info.BuildCommit()), orNA(info.BuildDate()))

			if err := a.connect(cmd, args); err != nil {
				return err
			}
			daemon, err := a.vault.Version(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "daemon unreachable: %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "vaultd %s\n", daemon)
			return nil
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
