package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbql-go/rbql"
)

var (
	queryString string

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Run an RBQL query against an input stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if queryString == "" {
				_ = cmd.Help()
				return fmt.Errorf("--query is required")
			}

			if cfg, err := rbql.LoadConfig(configPath); err == nil && !cmd.Flags().Changed("delim") {
				delimiter = string(cfg.Delim(resolveDelim()))
			}

			in, err := openInput()
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := openOutput()
			if err != nil {
				return err
			}
			defer out.Close()

			opts := rbql.Options{
				Delimiter: resolveDelim(),
				Logger:    fieldLogger(),
			}
			if joinTable != "" {
				opts.OpenTableB = func(path string) (io.ReadCloser, error) {
					return os.Open(joinTable)
				}
			}

			return rbql.Query(context.Background(), queryString, in, out, opts)
		},
	}
)

func openInput() (io.ReadCloser, error) {
	if inputPath == "" || inputPath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inputPath)
}

func openOutput() (io.WriteCloser, error) {
	if outputPath == "" || outputPath == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(outputPath)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func init() {
	queryCmd.Flags().StringVarP(&queryString, "query", "q", "", "RBQL query to run")
	queryCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input file (- for stdin)")
	queryCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file (- for stdout)")
	queryCmd.Flags().StringVarP(&joinTable, "join-table", "j", "", "table B file for JOIN clauses")
	rootCmd.AddCommand(queryCmd)
}
