// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/config"
)

func TestConfigureJSONToBuffer(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer

	closer, err := Configure(logger, config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.WithField("collection", "products").Debug("find")

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), `"collection":"products"`)
}

func TestConfigureWritesRotatedFile(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "server.log")

	closer, err := Configure(logger, config.LogConfig{Level: "info", File: file, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	_, err := Configure(logrus.New(), config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
