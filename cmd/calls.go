package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/monitor"
)

var callsCmd = &cobra.Command{
	Use:   "calls <address> <fromBlock> <toBlock> <signature>...",
	Short: "Collect traced contract calls between two blocks",
	Long:  `Collects the calls into the contract matching the given function signatures, e.g. "transfer(address to,uint256 amount)". Requires trace_filter support on the RPC.`,
	Args:  cobra.MinimumNArgs(4),
	Run:   RunCalls,
}

var viewCalls bool

func init() {
	callsCmd.Flags().BoolVar(&viewCalls, "view", false, "Treat the signatures as view functions")
}

type callOutput struct {
	Signature string                                       `json:"signature"`
	Kind      string                                       `json:"kind"`
	Records   []monitor.CallRecord[common.DecodedCallData] `json:"records"`
}

func RunCalls(cmd *cobra.Command, args []string) {
	address, interval, err := parseScanArgs(args)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid arguments")
	}

	kind := monitor.CallKindTransaction
	if viewCalls {
		kind = monitor.CallKindView
	}
	collectors := make([]*monitor.TypedFunctionCollector[common.DecodedCallData], 0, len(args)-3)
	registered := make([]monitor.FunctionCollector, 0, len(args)-3)
	for _, signature := range args[3:] {
		collector, err := monitor.NewFunctionCollector(signature, kind, func(decoded *common.DecodedTrace) (common.DecodedCallData, error) {
			return decoded.Decoded, nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid function signature")
		}
		collectors = append(collectors, collector)
		registered = append(registered, collector)
	}

	m, err := newChainMonitor(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start monitor")
	}
	defer m.Close()

	_, decodeErrors, err := m.engine.CollectFunctionCalls(cmd.Context(), address, interval, registered...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to collect function calls")
	}
	printDecodeErrors(decodeErrors)

	output := make([]callOutput, 0, len(collectors))
	for _, collector := range collectors {
		output = append(output, callOutput{Signature: collector.Signature(), Kind: collector.Kind().String(), Records: collector.Records()})
	}
	if err := printJSON(output); err != nil {
		log.Fatal().Err(err).Msg("Failed to print result")
	}
}
