package cmd

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/monitor"
)

var eventsCmd = &cobra.Command{
	Use:   "events <address> <fromBlock> <toBlock> <signature>...",
	Short: "Collect contract events between two blocks",
	Long:  `Collects the events matching the given signatures, e.g. "Transfer(address indexed from,address indexed to,uint256 value)", and prints them with their block time.`,
	Args:  cobra.MinimumNArgs(4),
	Run:   RunEvents,
}

type eventOutput struct {
	Signature string                                       `json:"signature"`
	Records   []monitor.EventRecord[common.DecodedLogData] `json:"records"`
}

func RunEvents(cmd *cobra.Command, args []string) {
	address, interval, err := parseScanArgs(args)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}

	collectors := make([]*monitor.TypedEventCollector[common.DecodedLogData], 0, len(args)-3)
	registered := make([]monitor.EventCollector, 0, len(args)-3)
	for _, signature := range args[3:] {
		collector, err := monitor.NewEventCollector(signature, func(decoded *common.DecodedLog) (common.DecodedLogData, error) {
			return decoded.Decoded, nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid event signature")
		}
		collectors = append(collectors, collector)
		registered = append(registered, collector)
	}

	m, err := newChainMonitor(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start monitor")
	}
	defer m.Close()

	_, decodeErrors, err := m.engine.CollectEvents(cmd.Context(), address, interval, registered...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to collect events")
	}
	printDecodeErrors(decodeErrors)

	output := make([]eventOutput, 0, len(collectors))
	for _, collector := range collectors {
		output = append(output, eventOutput{Signature: collector.Signature(), Records: collector.Records()})
	}
	if err := printJSON(output); err != nil {
		log.Fatal().Err(err).Msg("Failed to print result")
	}
}

func parseScanArgs(args []string) (address gethCommon.Address, interval common.BlockInterval, err error) {
	contract, err := parseAddress(args[0])
	if err != nil {
		return address, interval, err
	}
	fromBlock, err := parseBlockNumber(args[1])
	if err != nil {
		return address, interval, err
	}
	toBlock, err := parseBlockNumber(args[2])
	if err != nil {
		return address, interval, err
	}
	interval, err = common.NewBlockNumberInterval(fromBlock, toBlock)
	return contract, interval, err
}
