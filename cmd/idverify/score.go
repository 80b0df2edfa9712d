package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"idverify/internal/identity"
	"idverify/internal/verification/handler"
)

var scoreCmd = &cobra.Command{
	Use:   "score <claimed.json> <known.json>",
	Short: "Score a provider identity against a profile identity",
	Long: `Compare two identity records offline and print the match result.

The claimed file holds the provider's record (first_name, last_name, phone,
email, date_of_birth as YYYY-MM-DD or DD-MM-YYYY). The known file holds the
profile on file with date_of_birth as YYYY-MM-DD. Thresholds come from config.

Example:
  idverify score provider.json profile.json`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	var claimed identity.ClaimedIdentity
	if err := readJSON(args[0], &claimed); err != nil {
		return err
	}
	var record handler.KnownRecord
	if err := readJSON(args[1], &record); err != nil {
		return err
	}
	known, err := record.Parse()
	if err != nil {
		return eris.Wrap(err, "parse known identity")
	}

	scorer := identity.NewScorer(cfg.Thresholds.Scorer())
	result := scorer.Score(claimed, known)
	log.Debug("scored identity", "confidence", result.OverallConfidence, "checks", result.ChecksPerformed)
	return writeJSON(cmd.OutOrStdout(), result)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "decode %s", path)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
