package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltafood/delta/internal/content"
)

func TestCreateTempSite(t *testing.T) {
	dir, path := CreateTempSite(t)

	assert.Equal(t, filepath.Join(dir, ContentFileName), path)
	AssertFilePermissions(t, path, 0o600)

	c, err := content.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, c.Testimonials)
}

func TestCreateTestConfig(t *testing.T) {
	cfg := CreateTestConfig("/srv/delta/content.yml")

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Zero(t, cfg.Server.Port)
	assert.Equal(t, "/srv/delta/content.yml", cfg.Content.Path)
	assert.Zero(t, cfg.Contact.SubmitDelay)
	assert.NotZero(t, cfg.Carousel.AutoplayInterval)
}

func TestWaitForFileChange(t *testing.T) {
	dir := t.TempDir()
	path := WriteContentFile(t, dir, []byte("initial"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	originalModTime := info.ModTime()

	go func() {
		time.Sleep(50 * time.Millisecond)
		later := originalModTime.Add(time.Second)
		_ = os.Chtimes(path, later, later)
	}()

	WaitForFileChange(t, path, originalModTime, time.Second)

	newInfo, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, newInfo.ModTime().After(originalModTime))
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock()

	var fired []string
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	clock.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := clock.AfterFunc(time.Second, func() { fired = append(fired, "x") })
	assert.True(t, stopped.Stop())
	assert.Equal(t, 2, clock.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, []string{"a"}, fired)

	clock.Advance(time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Zero(t, clock.Pending())
	assert.Equal(t, 2*time.Second, clock.Now())
}
