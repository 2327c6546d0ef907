package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/fabrica/sampler"
	"github.com/syssam/fabrica/schema/inspect"
)

var sampleOut string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Mine JSON-column sample values from a live database",
	Long: `Scans every JSON column of the connected database for one
representative value and writes the result as the flat
table→column→value overrides file consumed by the factory package.
Commit the file next to the tests that use it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := dbURL()
		if err != nil {
			return err
		}
		graph, err := inspect.Graph(cmd.Context(), url)
		if err != nil {
			return err
		}
		db, err := openDB(url)
		if err != nil {
			return err
		}
		defer db.Close()

		fx, err := sampler.Collect(cmd.Context(), db, graph)
		if err != nil {
			return err
		}
		if err := fx.WriteFile(sampleOut); err != nil {
			return err
		}
		columns := 0
		for _, m := range fx {
			columns += len(m)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sample(s) across %d table(s) to %s\n", columns, len(fx), sampleOut)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "json_fixtures.json", "output file")
	rootCmd.AddCommand(sampleCmd)
}
