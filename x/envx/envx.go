// Package envx loads host-side settings from an optional .env file and the
// process environment, and builds the zerolog logger they describe.
// Firmware builds never import it.
package envx

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// LoadDotEnv loads variables from path (".env" when empty). A missing file
// is not an error. Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Process loads envFile and then fills a T from variables named
// PREFIX_<envconfig tag>.
func Process[T any](prefix, envFile string) (T, error) {
	var cfg T
	if err := LoadDotEnv(envFile); err != nil {
		return cfg, err
	}
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Log is the logging section shared by the host programs. Embed it
// without a tag so its variables keep the outer prefix.
type Log struct {
	// Env: <PREFIX>_LOG_LEVEL (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	// Env: <PREFIX>_LOG_FORMAT (default: pretty). pretty or json.
	Format string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// Logger builds a logger writing to w. Unknown levels fall back to info.
func (l Log) Logger(w io.Writer) zerolog.Logger {
	if strings.EqualFold(l.Format, "pretty") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(w).Level(l.ZeroLevel()).With().Timestamp().Logger()
}

func (l Log) ZeroLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
