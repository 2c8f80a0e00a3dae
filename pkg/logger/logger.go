// Package logger 提供基于 zap 的日志初始化
//
// 控制台始终输出；开启 File 后额外写入滚动日志文件（lumberjack），
// 错误级别单独落一个 _error.log 文件。
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFmt = "2006/01/02 15:04:05.000"

// Config 日志配置
type Config struct {
	// Level 日志级别：debug / info / warn / error
	Level string
	// App 应用名，作为日志文件名前缀
	App string
	// Dir 日志文件目录
	Dir string
	// File 是否写入日志文件
	File bool
	// Quiet 关闭控制台输出（对应 --verbose=false）
	Quiet bool
}

// New 根据配置创建 zap.Logger
//
// 级别解析失败时回退到 info 并在 stderr 提示；
// Quiet 且未开启文件输出时返回 zap.NewNop()。
func New(cfg *Config) *zap.Logger {
	if cfg == nil {
		cfg = &Config{Level: "info"}
	}
	if cfg.App == "" {
		cfg.App = "sloth"
	}
	if cfg.Quiet && !cfg.File {
		return zap.NewNop()
	}

	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		_ = lv.UnmarshalText([]byte("info"))
		_, _ = fmt.Fprintf(os.Stderr, "logger: invalid log level %q, defaulting to INFO\n", cfg.Level)
	}

	cores := make([]zapcore.Core, 0, 3)
	if !cfg.Quiet {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg(false)),
			zapcore.Lock(os.Stdout),
			lv,
		))
	}
	if cfg.File {
		name := filepath.Join(cfg.Dir, cfg.App)
		cores = append(cores, fileCore(name+".log", lv))
		cores = append(cores, fileCore(name+"_error.log", zap.ErrorLevel))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// OrNop 返回 l，l 为 nil 时返回空日志器
// 系统构造函数统一用它处理可选 logger 参数
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func fileCore(file string, lv zapcore.LevelEnabler) zapcore.Core {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    20,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg(true)),
		zapcore.AddSync(w),
		lv,
	)
}

func encCfg(file bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	if file {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
