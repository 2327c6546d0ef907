package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/fabrica/schema/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the entity types of a live database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := dbURL()
		if err != nil {
			return err
		}
		graph, err := inspect.Graph(cmd.Context(), url)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, t := range graph.Tables() {
			fmt.Fprintf(w, "%s (%s)\n", t.Name, t.EntityName())
			for _, c := range t.Columns {
				line := fmt.Sprintf("  %s %s", c.Name, c.Type)
				if c.PrimaryKey {
					line += " pk"
				}
				if c.Nullable {
					line += " null"
				}
				if fk, ok := c.ForeignKey(); ok {
					line += fmt.Sprintf(" -> %s.%s", fk.Table, fk.Column)
				}
				fmt.Fprintln(w, line)
			}
			for _, r := range t.Relationships {
				card := "one"
				if r.Collection {
					card = "many"
				}
				fmt.Fprintf(w, "  %s: %s %s\n", r.Name, card, r.Table)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
