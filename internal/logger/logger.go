package logger

import (
	"os"
	"sync"
	"time"

	"MeuBolso/config"

	"github.com/rs/zerolog"
)

var (
	log  zerolog.Logger
	once sync.Once
)

func init() {
	// Logger padrão até Init ser chamado pelo fx
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init configura o logger global conforme o ambiente.
func Init(cfg *config.Config) {
	once.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

		if cfg.App.Environment == "development" {
			output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
			log = zerolog.New(output).With().Timestamp().Str("app", cfg.App.Name).Logger()
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			return
		}

		log = zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.App.Name).Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
