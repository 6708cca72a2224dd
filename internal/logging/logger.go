package logging

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/boxdancer/go-price-oracle/internal/config"
)

// New собирает SugaredLogger, который пишет в w (в main это stderr, чтобы stdout
// оставался только под результат). Неизвестный уровень превращается в warn.
func New(cfg config.LogConfig, w io.Writer) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.WarnLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)

	var enc zapcore.Encoder
	if cfg.Encoding == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// NewNop для тестов.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
