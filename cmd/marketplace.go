package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/marketplace"
)

var marketplaceCmd = &cobra.Command{
	Use:   "marketplace <address> <from RFC3339> <to RFC3339>",
	Short: "Summarize storage marketplace activity inside a time window",
	Args:  cobra.ExactArgs(3),
	Run:   RunMarketplace,
}

func RunMarketplace(cmd *cobra.Command, args []string) {
	address, err := parseAddress(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}
	from, err := parseTime(args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}
	to, err := parseTime(args[2])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}
	window, err := common.NewTimeRange(from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}

	m, err := newChainMonitor(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start monitor")
	}
	defer m.Close()

	events, err := marketplace.NewEventSet()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build marketplace collectors")
	}
	_, decodeErrors, err := m.engine.CollectEventsBetween(cmd.Context(), address, window, events.All()...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to collect marketplace events")
	}
	printDecodeErrors(decodeErrors)

	if err := printJSON(events.Summarize()); err != nil {
		log.Fatal().Err(err).Msg("Failed to print result")
	}
}
