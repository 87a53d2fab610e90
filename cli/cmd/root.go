package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "rbql",
		Short:        "rbql",
		SilenceUsage: true,
		Long:         `Apply an RBQL query to a delimited record stream. See README.md.`,
	}

	delimiter  string
	inputPath  string
	outputPath string
	joinTable  string
	configPath string
	verbose    bool
	logger     = logrus.New()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&delimiter, "delim", "d", "\t", "field delimiter")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "rbqlcfg.yaml", "path to rbqlcfg.yaml (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
	logger.SetLevel(logrus.WarnLevel)
}

func fieldLogger() logrus.FieldLogger {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func resolveDelim() byte {
	if len(delimiter) == 0 {
		return '\t'
	}
	return delimiter[0]
}
