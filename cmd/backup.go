package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hourbook/database"
)

var backupOut string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON snapshot of every table",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "Output file (default stdout)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	env, err := bootstrap()
	if err != nil {
		return err
	}
	defer env.close()

	snapshot, err := database.NewStore(env.db).Backup(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if backupOut != "" {
		f, err := os.Create(backupOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return err
	}

	env.log.Info().
		Int("professionals", len(snapshot.Data.Professionals)).
		Int("projects", len(snapshot.Data.Projects)).
		Int("entries", len(snapshot.Data.Entries)).
		Int("planned_allocations", len(snapshot.Data.PlannedAllocations)).
		Msg("backup written")
	return nil
}
