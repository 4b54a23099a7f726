package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/tracker/internal/cli"
	"hireflow/tracker/internal/models"
	"hireflow/tracker/internal/services"
)

type recordingAdapter struct {
	resume, job, url string
	err              error
}

func (r *recordingAdapter) TailorResume(ctx context.Context, resumeText, jd string) (*models.TailorResult, error) {
	r.resume, r.job = resumeText, jd
	if r.err != nil {
		return nil, r.err
	}
	return &models.TailorResult{
		MatchScore:       72,
		Suggestions:      []string{"Quantify impact"},
		Keywords:         []string{"Node.js"},
		RephrasedBullets: []models.RephrasedBullet{},
	}, nil
}

func (r *recordingAdapter) PerformATSCheck(ctx context.Context, resumeText string) (*models.ATSCheckResult, error) {
	r.resume = resumeText
	if r.err != nil {
		return nil, r.err
	}
	return &models.ATSCheckResult{
		ATSScore:          64,
		ReadabilityRating: "Good",
		CriticalIssues:    []string{},
		FormattingTips:    []string{"Use standard headings"},
		StrongPoints:      []string{},
	}, nil
}

func (r *recordingAdapter) ExtractJobDetailsFromURL(ctx context.Context, url string) (*models.JobExtractionResult, error) {
	r.url = url
	if r.err != nil {
		return nil, r.err
	}
	return &models.JobExtractionResult{Company: "Acme", Role: "SRE"}, nil
}

func run(t *testing.T, adapter *recordingAdapter, stdin string, args ...string) (string, time.Duration, error) {
	t.Helper()

	var gotTimeout time.Duration
	cmd := cli.NewRootCmdForTest(func(ctx context.Context, timeout time.Duration) (services.AIAdapter, error) {
		gotTimeout = timeout
		return adapter, nil
	})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), gotTimeout, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTailorCommand(t *testing.T) {
	adapter := &recordingAdapter{}
	resume := writeFile(t, "resume.txt", "Built React apps")

	out, timeout, err := run(t, adapter, "React and Node.js", "tailor", "--resume", resume, "--job", "-", "--timeout", "5s")
	require.NoError(t, err)

	assert.Equal(t, "Built React apps", adapter.resume)
	assert.Equal(t, "React and Node.js", adapter.job)
	assert.Equal(t, 5*time.Second, timeout)

	var result models.TailorResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 72, result.MatchScore)
}

func TestTailorCommand_RejectsEmptyInput(t *testing.T) {
	adapter := &recordingAdapter{}
	resume := writeFile(t, "resume.txt", "   ")

	_, _, err := run(t, adapter, "jd", "tailor", "--resume", resume, "--job", "-")
	assert.Error(t, err)
	assert.Empty(t, adapter.job)
}

func TestATSCommand(t *testing.T) {
	out, _, err := run(t, &recordingAdapter{}, "Go developer", "ats", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"atsScore": 64`)
	assert.Contains(t, out, `"criticalIssues": []`)
}

func TestExtractCommand(t *testing.T) {
	adapter := &recordingAdapter{}

	out, _, err := run(t, adapter, "", "extract", "https://jobs.example.com/42")
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com/42", adapter.url)
	assert.Contains(t, out, `"salaryRange": ""`)

	_, _, err = run(t, adapter, "", "extract", "not-a-url")
	assert.Error(t, err)
}

func TestCommand_ReportsFailureMessage(t *testing.T) {
	adapter := &recordingAdapter{err: &services.AdapterFailure{
		Op:   services.OpATSCheck,
		Kind: services.FailureSchema,
		Err:  errors.New("atsScore out of range"),
	}}

	_, _, err := run(t, adapter, "Go developer", "ats", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Couldn't understand the AI response")
	assert.Contains(t, err.Error(), "schema_violation")
}
