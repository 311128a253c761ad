package commands

import (
	"os"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewQueryCommand creates the REST query command.
func NewQueryCommand() *cobra.Command {
	var where []string

	cmd := &cobra.Command{
		Use:   "query <data-extension-key>",
		Short: "Read rows over the REST API",
		Long: `Read the rows of a data extension. Each --where adds a filter; filters are
joined with "and" in the order given. Operators: eq, ne, lt, le, gt, ge, like.`,
		Example: `  sfmc query Subscribers --where "City eq New York" --where "Age gt 30"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := make([]sfmc.RestFilter, 0, len(where))

			for _, clause := range where {
				filter, err := parseRestWhere(clause)
				if err != nil {
					return err
				}

				filters = append(filters, filter)
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			query := s.client.DataExtension(args[0]).Get()
			for _, filter := range filters {
				query = query.Where(filter.ColumnName, filter.Operator, filter.Value)
			}

			rows, err := query.Execute(cmd.Context())
			if err != nil {
				return err
			}

			return renderRows(os.Stdout, viper.GetString("output"), rows)
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, `filter as "column operator value" (repeatable)`)

	return cmd
}
