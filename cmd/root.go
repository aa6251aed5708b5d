package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configs "github.com/thirdweb-dev/chain-monitor/configs"
	customLogger "github.com/thirdweb-dev/chain-monitor/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "chain-monitor",
		Short: "Block time lookups and typed contract event collection",
		Long:  "chain-monitor answers which wall-clock time a block was produced at, which block was current at a given time, and which contract events and calls happened between two blocks.",
	}
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC Url of the chain to monitor")
	rootCmd.PersistentFlags().Int("rpc-batchSize", 0, "How many calls to send in one JSON-RPC batch")
	rootCmd.PersistentFlags().Int("rpc-maxConcurrentBatches", 0, "How many JSON-RPC batches may be in flight at once")
	rootCmd.PersistentFlags().Int("rpc-logs-blocksPerRequest", 0, "How many blocks to fetch logs for per request")
	rootCmd.PersistentFlags().Int("rpc-logs-batchDelay", 0, "Milliseconds to wait between batches of logs when fetching from the RPC")
	rootCmd.PersistentFlags().Bool("rpc-traces-enabled", true, "Whether to enable fetching traces from the RPC")
	rootCmd.PersistentFlags().Int("rpc-traces-blocksPerRequest", 0, "How many blocks to fetch traces for per request")
	rootCmd.PersistentFlags().Int("rpc-traces-batchDelay", 0, "Milliseconds to wait between batches of traces when fetching from the RPC")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().Int("monitor-maxSearchIterations", 0, "Maximum number of blocks probed when searching the block for a timestamp")
	rootCmd.PersistentFlags().Uint64("monitor-referenceSpan", 0, "Distance below the chain head of the first search probe")
	rootCmd.PersistentFlags().Int("monitor-fetchTimeoutMs", 0, "Timeout in milliseconds of a single block timestamp fetch")
	rootCmd.PersistentFlags().Bool("metrics-enabled", false, "Whether to serve prometheus metrics")
	rootCmd.PersistentFlags().String("metrics-addr", ":2112", "Address of the prometheus metrics server")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("rpc.batchSize", rootCmd.PersistentFlags().Lookup("rpc-batchSize"))
	viper.BindPFlag("rpc.maxConcurrentBatches", rootCmd.PersistentFlags().Lookup("rpc-maxConcurrentBatches"))
	viper.BindPFlag("rpc.logs.blocksPerRequest", rootCmd.PersistentFlags().Lookup("rpc-logs-blocksPerRequest"))
	viper.BindPFlag("rpc.logs.batchDelay", rootCmd.PersistentFlags().Lookup("rpc-logs-batchDelay"))
	viper.BindPFlag("rpc.traces.enabled", rootCmd.PersistentFlags().Lookup("rpc-traces-enabled"))
	viper.BindPFlag("rpc.traces.blocksPerRequest", rootCmd.PersistentFlags().Lookup("rpc-traces-blocksPerRequest"))
	viper.BindPFlag("rpc.traces.batchDelay", rootCmd.PersistentFlags().Lookup("rpc-traces-batchDelay"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
	viper.BindPFlag("monitor.maxSearchIterations", rootCmd.PersistentFlags().Lookup("monitor-maxSearchIterations"))
	viper.BindPFlag("monitor.referenceSpan", rootCmd.PersistentFlags().Lookup("monitor-referenceSpan"))
	viper.BindPFlag("monitor.fetchTimeoutMs", rootCmd.PersistentFlags().Lookup("monitor-fetchTimeoutMs"))
	viper.BindPFlag("metrics.enabled", rootCmd.PersistentFlags().Lookup("metrics-enabled"))
	viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))

	rootCmd.AddCommand(blockTimeCmd)
	rootCmd.AddCommand(blockAtCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(marketplaceCmd)
}

func initConfig() {
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
