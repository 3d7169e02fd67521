package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyseCmd_Use(t *testing.T) {
	assert.Equal(t, "analyse [doc-id]", analyseCmd.Use)
}

func TestAnalyseCmd_RequiresDocID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyse"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnalyseCmd_PrintsReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyse", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "A twelve month lease.")
	assert.Contains(t, out, "Your obligations:")
	assert.Contains(t, out, "pay rent on the first of each month")
	assert.Contains(t, out, "Risks:")
	assert.Contains(t, out, "Automatic renewal")
	assert.Contains(t, out, "Why it matters: You may be locked in.")
	assert.Contains(t, out, "Red flags:")
	assert.Contains(t, out, "Overall: Appears workable with two changes.")
	// Empty sections stay out of the output.
	assert.NotContains(t, out, "Costs and payments:")
}

func TestAnalyseCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyse", "--json", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
		analyseJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"Summary"`)
	assert.Contains(t, buf.String(), "A twelve month lease.")
}

func TestAnalyseCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	analysisService = &mockAnalysisService{err: errors.New("model offline")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyse", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to analyse document")
}

func TestAnalyseCmd_ServiceNotConfigured(t *testing.T) {
	oldService := analysisService
	analysisService = nil
	defer func() {
		analysisService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyse", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis service not configured")
}
