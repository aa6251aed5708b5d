package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var blockAtCmd = &cobra.Command{
	Use:   "blockat <RFC3339 timestamp>",
	Short: "Print the last block produced at or before a timestamp",
	Args:  cobra.ExactArgs(1),
	Run:   RunBlockAt,
}

func RunBlockAt(cmd *cobra.Command, args []string) {
	target, err := parseTime(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}
	m, err := newChainMonitor(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start monitor")
	}
	defer m.Close()

	entry, err := m.cache.GetBlockForUtc(cmd.Context(), target)
	if err != nil {
		log.Fatal().Err(err).Time("target", target).Msg("Failed to find block for timestamp")
	}
	if err := printJSON(entry); err != nil {
		log.Fatal().Err(err).Msg("Failed to print result")
	}
}
