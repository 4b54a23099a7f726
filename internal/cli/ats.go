package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newATSCmd(open adapterOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "ats <resume-file|->",
		Short: "Score a resume for ATS friendliness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resume, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(resume) == "" {
				return errors.New("resume must not be empty")
			}

			adapter, err := open(cmd)
			if err != nil {
				return err
			}
			result, err := adapter.PerformATSCheck(cmd.Context(), resume)
			if err != nil {
				return failureError(err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}
