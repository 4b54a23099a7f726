package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newTailorCmd(open adapterOpener) *cobra.Command {
	var resumePath, jobPath string

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Suggest how to tailor a resume to a job description",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resumePath == "-" && jobPath == "-" {
				return errors.New("only one of --resume and --job can read stdin")
			}
			resume, err := readInput(cmd, resumePath)
			if err != nil {
				return err
			}
			job, err := readInput(cmd, jobPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(resume) == "" || strings.TrimSpace(job) == "" {
				return errors.New("resume and job description must not be empty")
			}

			adapter, err := open(cmd)
			if err != nil {
				return err
			}
			result, err := adapter.TailorResume(cmd.Context(), resume, job)
			if err != nil {
				return failureError(err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&resumePath, "resume", "", "resume text file, - for stdin")
	cmd.Flags().StringVar(&jobPath, "job", "", "job description text file, - for stdin")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}
