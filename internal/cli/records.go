package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/utils"
)

func (a *cliApp) decryptCommand() *cobra.Command {
	var metadataOnly bool

	cmd := &cobra.Command{
		Use:     "decrypt <file>",
		Short:   "Print a record in plaintext frontmatter form",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			rec, err := a.vault.DecryptRecord(cmd.Context(), string(raw))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if metadataOnly {
				fmt.Fprintln(out, rec.Metadata)
				return nil
			}
			fmt.Fprint(out, record.JoinFrontmatter(rec.Metadata, rec.Body))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&metadataOnly, "metadata", "m", false, "print only the metadata block")
	return cmd
}

func (a *cliApp) migrateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "migrate <file>...",
		Short:   "Encrypt legacy plaintext records in place",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			migrated := 0

			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if record.IsEncryptedFormat(string(raw)) {
					fmt.Fprintf(out, "%s: already encrypted\n", path)
					continue
				}

				encrypted, err := a.vault.MigrateRecord(cmd.Context(), string(raw))
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if !dryRun {
					if err = utils.WriteFileAtomic(path, []byte(encrypted), utils.FileMode(path, 0o600)); err != nil {
						return err
					}
				}
				migrated++
				fmt.Fprintf(out, "%s: encrypted\n", path)
			}

			a.logger.Debug().Int("migrated", migrated).Bool("dry_run", dryRun).Msg("migration finished")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return cmd
}

// detectCommand classifies files locally without contacting the daemon.
func detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Report the storage format of record files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, formatOf(string(raw)))
			}
			return nil
		},
	}
}

func formatOf(raw string) string {
	switch {
	case record.IsEncryptedFormat(raw):
		return "encrypted"
	case record.IsSealedRecord(raw):
		return "sealed password"
	default:
		return "plaintext"
	}
}
