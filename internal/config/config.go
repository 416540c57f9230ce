package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config captures the runtime configuration for the speech gateway.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Audio         AudioConfig         `mapstructure:"audio"`
	Providers     ProviderConfig      `mapstructure:"providers"`
	Backends      BackendConfig       `mapstructure:"backends"`
	Models        ModelConfig         `mapstructure:"models"`
	Translation   TranslationConfig   `mapstructure:"translation"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	ListenAddr            string        `mapstructure:"listen_addr"`
	BodyLimitMB           int           `mapstructure:"body_limit_mb"`
	SyncTimeout           time.Duration `mapstructure:"sync_timeout"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout"`
	GracefulShutdownDelay time.Duration `mapstructure:"graceful_shutdown_delay"`
}

type AudioConfig struct {
	MaxUploadMB int    `mapstructure:"max_upload_mb"`
	SpoolDir    string `mapstructure:"spool_dir"`
}

type ProviderConfig struct {
	OpenAIKey           string `mapstructure:"openai_key"`
	OpenAIBaseURL       string `mapstructure:"openai_base_url"`
	OpenAIOrganization  string `mapstructure:"openai_organization"`
	CloudflareAccountID string `mapstructure:"cloudflare_account_id"`
	CloudflareToken     string `mapstructure:"cloudflare_token"`
	ElevenLabsKey       string `mapstructure:"elevenlabs_key"`
	ElevenLabsVoiceID   string `mapstructure:"elevenlabs_voice_id"`
}

// BackendConfig names the provider serving each capability.
type BackendConfig struct {
	STT        string `mapstructure:"stt"`
	TTS        string `mapstructure:"tts"`
	Translator string `mapstructure:"translator"`
}

type ModelConfig struct {
	STTModel        string `mapstructure:"stt_model"`
	TTSModel        string `mapstructure:"tts_model"`
	TTSVoice        string `mapstructure:"tts_voice"`
	TTSFormat       string `mapstructure:"tts_format"`
	TranslatorModel string `mapstructure:"translator_model"`
}

type TranslationConfig struct {
	Languages []string `mapstructure:"languages"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

type ObservabilityConfig struct {
	OTLPEndpoint  string `mapstructure:"otlp_endpoint"`
	EnableOTLP    bool   `mapstructure:"enable_otlp"`
	EnableMetrics bool   `mapstructure:"enable_metrics"`
}

// Options controls the config loader behavior.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load returns the merged configuration sourced from YAML and environment
// variables.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	explicitFile := false
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		explicitFile = true
	} else if cfg := os.Getenv("VOXGATE_CONFIG_FILE"); cfg != "" {
		v.SetConfigFile(cfg)
		explicitFile = true
	}

	if !explicitFile {
		// Allow standard lookup locations when no explicit file is provided.
		v.SetConfigName("voxgate")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("VOXGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(timeStringToDurationHook())); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures required values are set and normalizes the rest.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		return fmt.Errorf("server.listen_addr must be provided")
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("server.body_limit_mb must be > 0")
	}
	if err := c.Audio.validate(); err != nil {
		return err
	}
	if err := c.Backends.validate(); err != nil {
		return err
	}
	if err := c.Translation.validate(); err != nil {
		return err
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AudioConfig) validate() error {
	if a.MaxUploadMB <= 0 {
		a.MaxUploadMB = 50
	}
	if strings.TrimSpace(a.SpoolDir) == "" {
		a.SpoolDir = os.TempDir()
	}
	return nil
}

func (b *BackendConfig) validate() error {
	if strings.TrimSpace(b.STT) == "" {
		return fmt.Errorf("backends.stt must be provided")
	}
	if strings.TrimSpace(b.TTS) == "" {
		return fmt.Errorf("backends.tts must be provided")
	}
	if strings.TrimSpace(b.Translator) == "" {
		return fmt.Errorf("backends.translator must be provided")
	}
	return nil
}

func (t *TranslationConfig) validate() error {
	if len(t.Languages) == 0 {
		return fmt.Errorf("translation.languages must list at least one target language")
	}
	seen := make(map[string]struct{}, len(t.Languages))
	clean := make([]string, 0, len(t.Languages))
	for i, lang := range t.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return fmt.Errorf("translation.languages[%d] must not be blank", i)
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		clean = append(clean, lang)
	}
	t.Languages = clean
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.URL == "" {
		// Usage recording is optional; nothing else to check.
		return nil
	}
	if d.RunMigrations && d.MigrationsDir == "" {
		return fmt.Errorf("database.migrations_dir must be provided when run_migrations is true")
	}
	if d.MaxConns < 0 {
		return fmt.Errorf("database.max_conns must be >= 0")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.body_limit_mb", 50)
	v.SetDefault("server.sync_timeout", "300s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.graceful_shutdown_delay", "5s")

	v.SetDefault("audio.max_upload_mb", 50)
	v.SetDefault("audio.spool_dir", os.TempDir())

	v.SetDefault("backends.stt", "openai")
	v.SetDefault("backends.tts", "openai")
	v.SetDefault("backends.translator", "openai")

	v.SetDefault("models.stt_model", "whisper-1")
	v.SetDefault("models.tts_model", "gpt-4o-mini-tts")
	v.SetDefault("models.tts_voice", "alloy")
	v.SetDefault("models.tts_format", "wav")
	v.SetDefault("models.translator_model", "gpt-4o-mini")

	v.SetDefault("translation.languages", []string{"es", "fr", "de"})

	v.SetDefault("database.run_migrations", true)
	v.SetDefault("database.migrations_dir", "./migrations")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_idle_time", "10m")
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("observability.enable_otlp", false)
	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.otlp_endpoint", "http://localhost:4317")
}

func timeStringToDurationHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case time.Duration:
			return v, nil
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, err
			}
			return d, nil
		default:
			return nil, fmt.Errorf("cannot decode %T into time.Duration", data)
		}
	}
}
