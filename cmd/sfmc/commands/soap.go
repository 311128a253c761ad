package commands

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSoapCommand creates the SOAP command group.
func NewSoapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soap",
		Short: "Data extension operations over the SOAP API",
		Long:  "Retrieve rows from, create, and delete data extensions over the SOAP API",
	}

	cmd.AddCommand(newSoapRetrieveCommand())
	cmd.AddCommand(newSoapCreateCommand())
	cmd.AddCommand(newSoapDeleteCommand())

	return cmd
}

func newSoapRetrieveCommand() *cobra.Command {
	var (
		fields      []string
		where       []string
		allAccounts bool
	)

	cmd := &cobra.Command{
		Use:   "retrieve <data-extension-key>",
		Short: "Retrieve rows",
		Long: `Retrieve the given fields of a data extension. Each --where adds a filter;
filters are combined with AND in the order given.`,
		Example: `  sfmc soap retrieve Subscribers --fields Email,Age --where "Age greaterThan 30"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := make([]sfmc.SoapFilter, 0, len(where))

			for _, clause := range where {
				filter, err := parseSoapWhere(clause)
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

			query := s.client.DataExtension(args[0]).Soap().Get(parseFieldList(fields), &sfmc.SoapGetOptions{
				QueryAllAccounts: allAccounts,
			})
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

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "fields to retrieve (comma separated)")
	cmd.Flags().StringArrayVar(&where, "where", nil, `filter as "column operator value" (repeatable)`)
	cmd.Flags().BoolVar(&allAccounts, "all-accounts", false, "query all business units")
	_ = cmd.MarkFlagRequired("fields")

	return cmd
}

func newSoapCreateCommand() *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "create <data-extension-key>",
		Short: "Create a data extension",
		Long: `Create a data extension named after its key. Each --field is
name:Type[:pk][:required][:length] where Type is Text, Number, Date or Boolean.
At least one field must be a primary key.`,
		Example: `  sfmc soap create Subscribers --field Email:Text:pk --field Age:Number --field Nickname:Text:50`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make([]sfmc.DataExtensionField, 0, len(specs))

			for _, spec := range specs {
				field, err := parseFieldSpec(spec)
				if err != nil {
					return err
				}

				fields = append(fields, field)
			}

			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			err = s.client.DataExtension(args[0]).Soap().Create(cmd.Context(), fields)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Data extension %s created\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&specs, "field", nil, "column definition (repeatable)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newSoapDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <data-extension-key>",
		Short: "Delete a data extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			err = s.client.DataExtension(args[0]).Soap().Remove(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Data extension %s deleted\n", args[0])

			return nil
		},
	}

	return cmd
}
