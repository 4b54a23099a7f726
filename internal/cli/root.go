// Package cli exposes the AI adapter as command-line tools.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hireflow/tracker/internal/config"
	"hireflow/tracker/internal/logging"
	"hireflow/tracker/internal/services"
)

// AdapterFactory builds the adapter a command talks to.
type AdapterFactory func(ctx context.Context, timeout time.Duration) (services.AIAdapter, error)

func newRootCmd(factory AdapterFactory) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:           "hireflow",
		Short:         "Tailor resumes and read job postings with Gemini",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "AI call timeout (defaults to AI_TIMEOUT)")

	open := func(cmd *cobra.Command) (services.AIAdapter, error) {
		return factory(cmd.Context(), timeout)
	}
	cmd.AddCommand(newTailorCmd(open))
	cmd.AddCommand(newATSCmd(open))
	cmd.AddCommand(newExtractCmd(open))
	return cmd
}

// NewRootCmdForTest returns the root command wired to factory.
func NewRootCmdForTest(factory AdapterFactory) *cobra.Command {
	return newRootCmd(factory)
}

func Execute() error {
	cmd := newRootCmd(geminiAdapter)
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func geminiAdapter(ctx context.Context, timeout time.Duration) (services.AIAdapter, error) {
	cfg := config.Load()
	logging.Setup(cfg.Server.Env, cfg.Server.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = cfg.Gemini.Timeout
	}

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return nil, err
	}
	return services.NewAIAdapter(gemini, timeout), nil
}

type adapterOpener func(cmd *cobra.Command) (services.AIAdapter, error)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// failureError replaces an adapter failure with the message a user should see.
func failureError(err error) error {
	var failure *services.AdapterFailure
	if errors.As(err, &failure) {
		return fmt.Errorf("%s (%s)", failure.UserMessage(), failure.Kind)
	}
	return err
}
