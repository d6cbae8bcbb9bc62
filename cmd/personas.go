package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cordial-cms/cordial-cms/personastore"
	"github.com/cordial-cms/cordial-cms/views"
)

func newPersonasCmd() *cobra.Command {
	var backendURL string
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "personas",
		Short: "Inspect personas on the backend",
	}
	c.PersistentFlags().StringVar(&backendURL, "backend-url", "http://127.0.0.1:5000/api", "CoRDial backend REST API base url")
	c.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "backend request timeout")

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List personas, marking the default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := views.NewPersonaList(personastore.NewClient(backendURL, timeout))
			if err := l.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", l.ErrorMessage(), err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDEFAULT\tVISUALLY IMPAIRED")
			for _, p := range l.Filter(query) {
				def := ""
				if p.IsDefault {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.ID, p.Name, def, p.IsVisuallyImpaired)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "only show personas matching this text")

	c.AddCommand(list)
	return c
}
