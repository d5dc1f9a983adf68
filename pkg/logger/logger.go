package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/equb/internal/config"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	consoleTimeLayout = "15:04:05 02-01-2006"
)

// New builds a logger writing to stdout. Console output is for operators at a terminal;
// JSON output carries RFC3339 timestamps for log shippers.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unsupported log lvl: %s", level)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	var encoder zapcore.Encoder
	switch format {
	case FormatConsole, "":
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(consoleTimeLayout)
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case FormatJSON:
		encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(lvl))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.String("service", "equb")), nil
}

// InitLogger installs the configured logger as zap's global.
func InitLogger(conf *config.Config) error {
	logger, err := New(conf.LogLvl, conf.LogFormat)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
