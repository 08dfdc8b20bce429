package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/content"
)

// ContentFileName is the catalog file CreateTempSite writes.
const ContentFileName = "content.yml"

// CreateTempSite creates a site directory holding a copy of the embedded
// catalog and returns the directory and the catalog path.
func CreateTempSite(t *testing.T) (dir, contentPath string) {
	t.Helper()

	dir = t.TempDir()
	contentPath = WriteContentFile(t, dir, content.DefaultYAML())
	return dir, contentPath
}

// WriteContentFile writes data as the catalog file in dir.
func WriteContentFile(t *testing.T, dir string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, ContentFileName)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// CreateTestConfig returns a configuration for tests: a free port, the
// given content file and no artificial submit delay.
func CreateTestConfig(contentPath string) *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.Environment = "test"
	cfg.Content.Path = contentPath
	cfg.Contact.SubmitDelay = 0
	cfg.Logging.Level = "error"
	return cfg
}

// AssertFilePermissions checks the permission bits of path.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode() & os.ModePerm
	require.Equal(t, expectedMode, actualMode,
		"File %s has incorrect permissions: got %o, want %o", path, actualMode, expectedMode)
}

// WaitForFileChange waits for filePath to be modified after originalModTime.
func WaitForFileChange(
	t *testing.T,
	filePath string,
	originalModTime time.Time,
	timeout time.Duration,
) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		info, err := os.Stat(filePath)
		if err == nil && info.ModTime().After(originalModTime) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("File %s was not modified within %v", filePath, timeout)
}
