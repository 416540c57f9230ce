package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{ConfigFile: writeConfigFile(t, "")})
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.ListenAddr)
	require.Equal(t, 50, cfg.Server.BodyLimitMB)
	require.Equal(t, 300*time.Second, cfg.Server.SyncTimeout)
	require.Equal(t, "openai", cfg.Backends.STT)
	require.Equal(t, "openai", cfg.Backends.TTS)
	require.Equal(t, "openai", cfg.Backends.Translator)
	require.Equal(t, "whisper-1", cfg.Models.STTModel)
	require.Equal(t, "wav", cfg.Models.TTSFormat)
	require.Equal(t, []string{"es", "fr", "de"}, cfg.Translation.Languages)
	require.Empty(t, cfg.Database.URL)
	require.True(t, cfg.Observability.EnableMetrics)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_addr: ":9090"
  sync_timeout: 45s
backends:
  stt: workersai
  tts: elevenlabs
translation:
  languages: ["ES", "es", "ja"]
models:
  tts_format: mp3
`)

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.ListenAddr)
	require.Equal(t, 45*time.Second, cfg.Server.SyncTimeout)
	require.Equal(t, "workersai", cfg.Backends.STT)
	require.Equal(t, "elevenlabs", cfg.Backends.TTS)
	require.Equal(t, "mp3", cfg.Models.TTSFormat)
	// Languages are lowercased and deduplicated in order.
	require.Equal(t, []string{"es", "ja"}, cfg.Translation.Languages)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VOXGATE_SERVER_LISTEN_ADDR", ":7070")
	t.Setenv("VOXGATE_MODELS_STT_MODEL", "whisper-large-v3")

	cfg, err := Load(Options{ConfigFile: writeConfigFile(t, "")})
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.ListenAddr)
	require.Equal(t, "whisper-large-v3", cfg.Models.STTModel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{ListenAddr: ":8080", BodyLimitMB: 50},
			Backends: BackendConfig{
				STT:        "openai",
				TTS:        "openai",
				Translator: "openai",
			},
			Translation: TranslationConfig{Languages: []string{"es"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing listen addr",
			mutate:  func(c *Config) { c.Server.ListenAddr = " " },
			wantErr: "listen_addr",
		},
		{
			name:    "missing stt backend",
			mutate:  func(c *Config) { c.Backends.STT = "" },
			wantErr: "backends.stt",
		},
		{
			name:    "no languages",
			mutate:  func(c *Config) { c.Translation.Languages = nil },
			wantErr: "translation.languages",
		},
		{
			name:    "blank language",
			mutate:  func(c *Config) { c.Translation.Languages = []string{"es", "  "} },
			wantErr: "must not be blank",
		},
		{
			name: "migrations dir required with database",
			mutate: func(c *Config) {
				c.Database.URL = "postgres://localhost/voxgate"
				c.Database.RunMigrations = true
				c.Database.MigrationsDir = ""
			},
			wantErr: "migrations_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFillsAudioDefaults(t *testing.T) {
	cfg := &Config{
		Server:      ServerConfig{ListenAddr: ":8080", BodyLimitMB: 1},
		Backends:    BackendConfig{STT: "a", TTS: "b", Translator: "c"},
		Translation: TranslationConfig{Languages: []string{"es"}},
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 50, cfg.Audio.MaxUploadMB)
	require.Equal(t, os.TempDir(), cfg.Audio.SpoolDir)
}
