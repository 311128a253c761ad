package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRowsCommand creates the rows command group.
func NewRowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Read and upsert single rows",
		Long:  "Read or upsert one data extension row identified by a key column over the REST API",
	}

	cmd.AddCommand(newRowsGetCommand())
	cmd.AddCommand(newRowsUpsertCommand())

	return cmd
}

func newRowsGetCommand() *cobra.Command {
	var column, value string

	cmd := &cobra.Command{
		Use:   "get <data-extension-key>",
		Short: "Get the first row whose key column matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			item, err := s.client.DataExtension(args[0]).Row(column, value).Get(cmd.Context())
			if err != nil {
				return err
			}

			return renderItem(os.Stdout, viper.GetString("output"), item)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "key column name")
	cmd.Flags().StringVar(&value, "value", "", "key column value")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newRowsUpsertCommand() *cobra.Command {
	var (
		column, value string
		assignments   []string
	)

	cmd := &cobra.Command{
		Use:   "upsert <data-extension-key>",
		Short: "Insert or update the row whose key column matches",
		Example: `  sfmc rows upsert Subscribers --column Email --value a@example.com \
    --set FirstName=Ada --set City="New York"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(assignments) == 0 {
				return ErrNoValuesToUpsert
			}

			record, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			item, err := s.client.DataExtension(args[0]).Row(column, value).Upsert(cmd.Context(), record)
			if err != nil {
				return err
			}

			return renderItem(os.Stdout, viper.GetString("output"), item)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "key column name")
	cmd.Flags().StringVar(&value, "value", "", "key column value")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "column=value to write (repeatable)")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
