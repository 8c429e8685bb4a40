package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

const progressInterval = 500 * time.Millisecond

type rotateFunc func(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)

func (a *cliApp) changePasswordCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the master password and re-encrypt every record",
		Long: `Change the master password and re-encrypt every record.

Progress is journaled. If the command is interrupted the daemon rolls back
the records rewritten so far; if the daemon itself stops, the next start
reports a pending rotation that resume-rotation completes.`,
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPw, err := a.prompter.ReadPassword("current master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(oldPw)

			newPw, err := readNewPassword(a.prompter, "new master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(newPw)

			return a.runRotation(cmd, a.vault.ChangePassword, oldPw, newPw, quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func (a *cliApp) resumeRotationCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "resume-rotation",
		Short:   "Finish a master password change that was interrupted",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPw, err := a.prompter.ReadPassword("previous master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(oldPw)

			newPw, err := a.prompter.ReadPassword("new master password: ")
			if err != nil {
				return err
			}
			defer crypto.Wipe(newPw)

			return a.runRotation(cmd, a.vault.ResumeRotation, oldPw, newPw, quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func (a *cliApp) rotationCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rotation",
		Short:   "Show the progress of a running password change",
		Args:    cobra.NoArgs,
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.vault.RotationProgress(cmd.Context())
			if err != nil {
				return err
			}
			if !p.Running {
				fmt.Fprintln(cmd.OutOrStdout(), "No rotation is running.")
				return nil
			}
			printProgress(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

// runRotation calls rotate and, unless quiet, polls progress on stderr
// until it returns.
func (a *cliApp) runRotation(cmd *cobra.Command, rotate rotateFunc, oldPw, newPw []byte, quiet bool) error {
	ctx := cmd.Context()

	var wg sync.WaitGroup
	watchCtx, stopWatch := context.WithCancel(ctx)
	if !quiet {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.watchProgress(watchCtx, cmd.ErrOrStderr())
		}()
	}

	result, err := rotate(ctx, oldPw, newPw)
	stopWatch()
	wg.Wait()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Master password changed: %d records re-encrypted, %d skipped in %s.\n",
		result.Rotated, result.Skipped, result.Duration.Round(time.Millisecond))
	return nil
}

func (a *cliApp) watchProgress(ctx context.Context, w io.Writer) {
	t := time.NewTicker(progressInterval)
	defer t.Stop()

	last := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p, err := a.vault.RotationProgress(ctx)
			if err != nil || !p.Running || p.Done == last {
				continue
			}
			last = p.Done
			printProgress(w, p)
		}
	}
}

func printProgress(w io.Writer, p models.RotationProgress) {
	fmt.Fprintf(w, "rotating %d/%d", p.Done, p.Total)
	if p.Current != "" {
		fmt.Fprintf(w, " %s", p.Current)
	}
	fmt.Fprintln(w)
}
