// Command imbalance compares resampling strategies for imbalanced binary
// classification on a delimited dataset and prints a per-strategy
// classification report.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skylearn/imbalance/dataset"
	"github.com/skylearn/imbalance/experiment"
	"github.com/skylearn/imbalance/internal/config"
	"github.com/skylearn/imbalance/pkg/log"
)

var (
	configPath string
	dataPath   string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "imbalance",
	Short: "Imbalanced classification strategy comparison",
	Long: `Loads a delimited dataset with a binary label column, applies the
configured resampling strategies to the training partition and reports
per-class precision, recall and F1 for each strategy against one fixed
test partition.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.Data.Path = dataPath
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = log.Setup(cfg.LogLevel)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the strategy comparison",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := experiment.NewRunner(cfg, logger).Run()
		if err != nil {
			return err
		}
		fmt.Print(experiment.RenderComparison(results))
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print dataset summary statistics and class balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		summary, err := dataset.Describe(table)
		if err != nil {
			return err
		}
		fmt.Print(summary.String())
		return nil
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the class distribution to an image file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		table, err := loadTable()
		if err != nil {
			return err
		}
		if err := experiment.SaveClassDistribution(table.ClassCounts(), table.LabelName(), output); err != nil {
			return err
		}
		logger.Info().Str("path", output).Msg("class distribution written")
		return nil
	},
}

func loadTable() (*dataset.Table, error) {
	delimiter := ','
	if cfg.Data.Delimiter != "" {
		delimiter = []rune(cfg.Data.Delimiter)[0]
	}
	return dataset.Load(cfg.Data.Path,
		dataset.WithLabelColumn(cfg.Data.LabelColumn),
		dataset.WithDelimiter(delimiter),
	)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the dataset (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	plotCmd.Flags().String("output", "class_distribution.png", "Output image path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(plotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
