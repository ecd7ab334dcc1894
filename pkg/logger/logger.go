// Package logger configures the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/affiliate-ledger/internal/config"
)

const service = "affiliate-ledger"

// InitLogger replaces the global zap logger with a console logger at
// conf.LogLvl. Errors and above also go to stderr.
func InitLogger(conf *config.Config) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(conf.LogLvl)))
	if err != nil {
		return fmt.Errorf("unsupported log lvl %q: %w", conf.LogLvl, err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05 02-01-2006")
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	encoder := zapcore.NewConsoleEncoder(enc)

	atLeast := func(floor zapcore.Level) zap.LevelEnablerFunc {
		return func(l zapcore.Level) bool { return l >= floor && l >= lvl }
	}
	below := func(ceil zapcore.Level) zap.LevelEnablerFunc {
		return func(l zapcore.Level) bool { return l < ceil && l >= lvl }
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), below(zapcore.ErrorLevel)),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), atLeast(zapcore.ErrorLevel)),
	)
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()).With(zap.String("service", service)))
	return nil
}
