package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func Init() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig = encoderCfg
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = l.Sugar()
}

func Info(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Infof(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

func Errorf(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Debugf(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

func Fatal(msg string) {
	sugar.Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	sugar.Fatalf(format, v...)
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
