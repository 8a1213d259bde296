package main

import (
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/watchara/quotebot/config"
	"github.com/watchara/quotebot/exchange/binance"
	"github.com/watchara/quotebot/helper"
	"github.com/watchara/quotebot/rdb"
	"github.com/watchara/quotebot/robot"
	"github.com/watchara/quotebot/strategy"
)

var rootCmd = &cobra.Command{
	Use:   "quotebot",
	Short: "QuoteBot: a spot market-maker quoting bot",
	Long:  "QuoteBot: a tick-driven spot market-maker quoting bot for Binance",
	Run:   func(cmd *cobra.Command, args []string) {},
}

var (
	configFile string
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "configFile", "c", "", "Configuration File (required)")
	rootCmd.MarkFlagRequired("configFile")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	} else if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	} else if ext := path.Ext(configFile); ext != ".yml" && ext != ".yaml" {
		fmt.Fprintln(os.Stderr, "Accept only YAML file")
		os.Exit(0)
	}

	// optional .env keeps API credentials out of the config file
	godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	helper.InitLogger(cfg.Debug)

	db, err := rdb.Connect(cfg.DbName)
	if err != nil {
		log.Error().Err(err).Str("dbName", cfg.DbName).Msg("cannot open the order journal")
		os.Exit(1)
	}

	ex := binance.NewSpotClient(cfg.ApiKey, cfg.SecretKey, cfg.DryRun)

	st, err := strategy.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("cannot create quoting policy")
		os.Exit(1)
	}

	if err := robot.New(ex, st, db, cfg).Run(); err != nil {
		os.Exit(1)
	}
}
