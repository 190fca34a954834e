package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "absuma",
	Short: "Fleet back-office service",
	Long:  `Back-office service for managing vehicles, drivers, yards, clients, vendors and trip reporting`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initConfig() {
	if err := config.InitConfig(cfgFile); err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	log = logger.New(&cfg.Logging)
}
