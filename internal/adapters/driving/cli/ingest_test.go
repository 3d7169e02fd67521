package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresFile(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_IngestsTextFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "lease_agreement.txt", "The tenant shall pay rent monthly.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Ingested")
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "Chunks: 3")
	assert.Contains(t, buf.String(), "A test summary.")

	mock := ingestService.(*mockIngestService)
	assert.Equal(t, "lease agreement", mock.lastReq.Title)
	assert.Equal(t, "The tenant shall pay rent monthly.", mock.lastReq.Text)
}

func TestIngestCmd_TitleFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "doc.txt", "some text")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--title", "My Lease", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestTitle = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	mock := ingestService.(*mockIngestService)
	assert.Equal(t, "My Lease", mock.lastReq.Title)
}

func TestIngestCmd_TitleFlagRejectedForMultipleFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	a := writeTempFile(t, "a.txt", "a")
	b := writeTempFile(t, "b.txt", "b")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--title", "One Title", a, b})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestTitle = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "single file")
}

func TestIngestCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "/nonexistent/file.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestIngestCmd_UnsupportedFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "binary.exe", "MZ")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	oldService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldService
	}()

	path := writeTempFile(t, "doc.txt", "text")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
