// Package logger 提供结构化日志功能
package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dumeirei/hotel-management/internal/common/config"
)

// ServiceName 每条日志附带的服务名
const ServiceName = "hotel-management"

const timeLayout = "2006-01-02 15:04:05.000"

var log *zap.Logger

// Init 初始化日志；文件输出始终使用 JSON，控制台按 Format 选择
func Init(cfg *config.LoggerConfig) error {
	level := getLogLevel(cfg.Level)

	var cores []zapcore.Core
	if cfg.Output == "" || cfg.Output == "stdout" || cfg.Output == "both" {
		cores = append(cores, zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stdout), level))
	}
	if cfg.FilePath != "" && (cfg.Output == "file" || cfg.Output == "both") {
		cores = append(cores, zapcore.NewCore(newEncoder("json"), zapcore.AddSync(newRotator(cfg)), level))
	}

	options := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Caller {
		options = append(options, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	log = zap.New(zapcore.NewTee(cores...), options...).With(zap.String("service", ServiceName))
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func newRotator(cfg *config.LoggerConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// getLogLevel 无法识别的级别按 info 处理
func getLogLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// GetLogger 获取原始日志器，未初始化时使用开发配置
func GetLogger() *zap.Logger {
	if log == nil {
		dev, _ := zap.NewDevelopment()
		log = dev.With(zap.String("service", ServiceName))
	}
	return log
}

// Sync 同步日志
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}

// Debug 调试日志
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Info 信息日志
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Warn 警告日志
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error 错误日志
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// 常用字段构造函数
var (
	String = zap.String
	Int    = zap.Int
	Int64  = zap.Int64
	Bool   = zap.Bool
	Err    = zap.Error
)

// 业务字段，键名与表字段一致

// CustomerID 客户ID
func CustomerID(id int64) zap.Field {
	return zap.Int64("cliente_id", id)
}

// ReservationID 预订ID
func ReservationID(id int64) zap.Field {
	return zap.Int64("reserva_id", id)
}

// PaymentID 付款ID
func PaymentID(id int64) zap.Field {
	return zap.Int64("pago_id", id)
}

// RoomNumber 房间号
func RoomNumber(numero string) zap.Field {
	return zap.String("habitacion", numero)
}

// Estado 房间、预订或付款状态
func Estado(estado string) zap.Field {
	return zap.String("estado", estado)
}

// UserID 员工ID
func UserID(id int64) zap.Field {
	return zap.Int64("user_id", id)
}

// Username 员工用户名
func Username(name string) zap.Field {
	return zap.String("username", name)
}

// Module 模块
func Module(name string) zap.Field {
	return zap.String("module", name)
}

// Action 操作
func Action(name string) zap.Field {
	return zap.String("action", name)
}

// 请求字段

// RequestID 请求ID
func RequestID(id string) zap.Field {
	return zap.String("request_id", id)
}

// Latency 请求耗时
func Latency(d time.Duration) zap.Field {
	return zap.Duration("latency", d)
}

// StatusCode HTTP状态码
func StatusCode(code int) zap.Field {
	return zap.Int("status_code", code)
}

// Method HTTP方法
func Method(method string) zap.Field {
	return zap.String("method", method)
}

// Path 请求路径
func Path(path string) zap.Field {
	return zap.String("path", path)
}

// IP 客户端IP
func IP(ip string) zap.Field {
	return zap.String("ip", ip)
}
