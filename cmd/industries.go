package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/climatiq-tools/carbon-adviser/internal/logger"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List industry segments present in the benchmark dataset",
	Run: func(_ *cobra.Command, _ []string) {
		listIndustries()
	},
}

func init() {
	rootCmd.AddCommand(industriesCmd)
}

func listIndustries() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	records := fetchRecords(ctx, config, logger)

	industries := records.Industries()
	if len(industries) == 0 {
		logger.Info("exiting", zap.String("reason", "no industries in the dataset"))
		return
	}

	for _, industry := range industries {
		fmt.Println(industry)
	}
}
