package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type RPCBatchSizeConfig struct {
	BlocksPerRequest int `mapstructure:"blocksPerRequest"`
	BatchDelay       int `mapstructure:"batchDelay"`
}

type RPCTracesConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	BlocksPerRequest int  `mapstructure:"blocksPerRequest"`
	BatchDelay       int  `mapstructure:"batchDelay"`
}

type RPCConfig struct {
	URL                  string             `mapstructure:"url"`
	MaxConcurrentBatches int                `mapstructure:"maxConcurrentBatches"`
	BatchSize            int                `mapstructure:"batchSize"`
	Logs                 RPCBatchSizeConfig `mapstructure:"logs"`
	Traces               RPCTracesConfig    `mapstructure:"traces"`
}

type MonitorConfig struct {
	// Upper bound on refinement steps in the block-for-timestamp search.
	MaxSearchIterations int `mapstructure:"maxSearchIterations"`
	// How far below the chain head the second search reference point is placed
	// when the cache holds fewer than two blocks.
	ReferenceSpan  uint64 `mapstructure:"referenceSpan"`
	FetchTimeoutMs int    `mapstructure:"fetchTimeoutMs"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Config struct {
	RPC     RPCConfig     `mapstructure:"rpc"`
	Log     LogConfig     `mapstructure:"log"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
