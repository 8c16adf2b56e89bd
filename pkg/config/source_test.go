package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestDefaultSourceLoad(t *testing.T) {
	k := koanf.New(".")
	src := &DefaultSource{}

	require.Equal(t, "defaults", src.Name())
	require.Equal(t, 10, src.Priority())
	require.NoError(t, src.Load(k))
	require.Equal(t, 8000, k.Int("server.port"))
}

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4444\n"), 0o600))

	k := koanf.New(".")
	src := &FileSource{Path: path}
	require.NoError(t, src.Load(k))
	require.Equal(t, 4444, k.Int("server.port"))
}

func TestFileSourceSkipsMissing(t *testing.T) {
	k := koanf.New(".")
	src := &FileSource{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	require.NoError(t, src.Load(k))
	require.False(t, k.Exists("server.port"))
}

func TestFileSourceSkipsEmptyPath(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, (&FileSource{}).Load(k))
}

func TestEnvSourceLoad(t *testing.T) {
	t.Setenv("SERVR_SERVER_PORT", "5555")

	k := koanf.New(".")
	src := &EnvSource{}
	require.NoError(t, src.Load(k))
	require.Equal(t, 5555, k.Int("server.port"))
}

func TestFlagSourceDebugForcesLogLevel(t *testing.T) {
	k := koanf.New(".")
	src := &FlagSource{Debug: true}
	require.NoError(t, src.Load(k))
	require.Equal(t, "debug", k.String("log.level"))
}

func TestDefaultSourcesOrder(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	sources := DefaultSources("/tmp/config.yaml", flags, false)

	require.Len(t, sources, 4)
	for i := 1; i < len(sources); i++ {
		require.Greater(t, sources[i].Priority(), sources[i-1].Priority())
	}
}
