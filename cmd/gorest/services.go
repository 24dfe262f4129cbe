package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/gorest/rest"
)

func newServicesCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List configured services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			names := cfg.ServiceNames()
			slices.Sort(names)
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services configured under app.rest.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tURL\tPATH\tVERSION\tSIGNED\tTIMEOUT")
			timeouts := cfg.Timeouts()
			for _, name := range names {
				svc, _ := cfg.Service(name)
				signed := "no"
				if svc.HasCredentials() {
					signed = "yes"
				}
				base := "/" + strings.Join(svc.PathSegments(), "/")
				timeout := timeouts.Resolve(base, rest.DefaultTimeout)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", name, svc.URL, base, svc.Version, signed, timeout)
			}
			return tw.Flush()
		},
	}
}
