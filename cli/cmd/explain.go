package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/rbql-go/rbql"
)

var (
	explainQuery string

	explainCmd = &cobra.Command{
		Use:   "explain",
		Short: "Compile an RBQL query and print the resulting plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if explainQuery == "" {
				_ = cmd.Help()
				return fmt.Errorf("--query is required")
			}
			plan, err := rbql.Compile(explainQuery)
			if err != nil {
				return err
			}
			fmt.Println(repr.String(plan))
			return nil
		},
	}
)

func init() {
	explainCmd.Flags().StringVarP(&explainQuery, "query", "q", "", "RBQL query to compile")
	rootCmd.AddCommand(explainCmd)
}
