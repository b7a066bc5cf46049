package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ghcrawl/pkg/domain/types"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Run("configure with json format to stderr", func(t *testing.T) {
		err := logging.Configure("json", "info", "stderr")
		gt.NoError(t, err)
		// Successful configuration is validated by no error
		// Actual log format testing requires output interception
	})

	t.Run("configure with text format", func(t *testing.T) {
		err := logging.Configure("text", "debug", "stderr")
		gt.NoError(t, err)
		// Successful configuration is validated by no error
	})

	t.Run("configure with file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ghcrawl.log")
		gt.NoError(t, logging.Configure("json", "info", path))
		logging.Default().Info("written to file")

		data := gt.R1(os.ReadFile(path)).NoError(t)
		gt.S(t, string(data)).Contains("written to file")

		gt.NoError(t, logging.Configure("text", "info", "-"))
	})

	t.Run("token is masked", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "masked.log")
		gt.NoError(t, logging.Configure("json", "info", path))
		logging.Default().Info("auth", "token", types.GitHubToken("ghp_0123456789abcdef"))

		data := gt.R1(os.ReadFile(path)).NoError(t)
		gt.False(t, strings.Contains(string(data), "ghp_0123456789abcdef"))

		gt.NoError(t, logging.Configure("text", "info", "-"))
	})

	t.Run("configure with invalid format returns error", func(t *testing.T) {
		err := logging.Configure("invalid", "info", "stderr")
		gt.Error(t, err)
	})

	t.Run("configure with invalid level returns error", func(t *testing.T) {
		err := logging.Configure("json", "invalid", "stderr")
		gt.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	// Test that Default() returns a functional logger
	logger := logging.Default()
	logger.Info("test message", "key", "value")
	// If this doesn't panic, the logger is functional
}
