package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newExtractCmd(open adapterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <job-url>",
		Short: "Read company, role, location, salary and description from a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.ParseRequestURI(args[0])
			if err != nil || u.Host == "" {
				return fmt.Errorf("invalid job url %q", args[0])
			}

			adapter, err := open(cmd)
			if err != nil {
				return err
			}
			result, err := adapter.ExtractJobDetailsFromURL(cmd.Context(), args[0])
			if err != nil {
				return failureError(err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}
