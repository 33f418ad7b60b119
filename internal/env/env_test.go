package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("FEATURES_TEST_STR", "data")
	t.Setenv("FEATURES_TEST_INT", "250")
	t.Setenv("FEATURES_TEST_BAD_INT", "abc")
	t.Setenv("FEATURES_TEST_BOOL", "true")

	assert.Equal(t, "data", GetString("FEATURES_TEST_STR", "x"))
	assert.Equal(t, "x", GetString("FEATURES_TEST_UNSET", "x"))
	assert.Equal(t, 250, GetInt("FEATURES_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("FEATURES_TEST_BAD_INT", 1))
	assert.True(t, GetBool("FEATURES_TEST_BOOL", false))
	assert.False(t, GetBool("FEATURES_TEST_UNSET", false))
}

func TestLoad(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		require.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("file values fill unset keys only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("FEATURES_TEST_DOTENV=fromfile\nFEATURES_TEST_PRESET=fromfile\n"), 0o644))
		t.Setenv("FEATURES_TEST_PRESET", "fromenv")
		t.Cleanup(func() { os.Unsetenv("FEATURES_TEST_DOTENV") })

		require.NoError(t, Load(path))
		assert.Equal(t, "fromfile", os.Getenv("FEATURES_TEST_DOTENV"))
		assert.Equal(t, "fromenv", os.Getenv("FEATURES_TEST_PRESET"))
	})
}
