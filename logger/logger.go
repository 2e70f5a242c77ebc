package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.SugaredLogger

// Init sets up the global logger writing to a rolling file and stdout.
func Init(filePath string) {
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), zapcore.InfoLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
	)

	Log = zap.New(core, zap.AddCaller()).Sugar()
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Tests and tools get a usable logger without calling Init.
	l, _ := zap.NewDevelopment()
	Log = l.Sugar()
}
