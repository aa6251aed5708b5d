package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var blockTimeCmd = &cobra.Command{
	Use:   "blocktime <block>",
	Short: "Print the timestamp of a block",
	Args:  cobra.ExactArgs(1),
	Run:   RunBlockTime,
}

func RunBlockTime(cmd *cobra.Command, args []string) {
	number, err := parseBlockNumber(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}
	m, err := newChainMonitor(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start monitor")
	}
	defer m.Close()

	entry, err := m.cache.GetBlockForNumber(cmd.Context(), number)
	if err != nil {
		log.Fatal().Err(err).Uint64("block", number).Msg("Failed to get block timestamp")
	}
	if err := printJSON(entry); err != nil {
		log.Fatal().Err(err).Msg("Failed to print result")
	}
}
