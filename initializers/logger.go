package initializers

import (
	"io"
	"os"
	"task-flow-backend/config"
	"task-flow-backend/fiberlog"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func InitLogger() *fiberlog.Config {
	formatter := &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
	level, err := log.ParseLevel(config.Conf.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	out := logOutput()
	log.SetFormatter(formatter)
	log.SetLevel(level)
	log.SetOutput(out)

	logger := log.New()
	logger.SetFormatter(formatter)
	logger.SetLevel(log.DebugLevel)
	logger.SetOutput(out)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
			fiberlog.TagSpaceID,
			fiberlog.RequestID,
		},
	}
}

// logOutput при указании файла лог пишется и в stdout, и в файл с ротацией
func logOutput() io.Writer {
	if config.Conf.Log.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   config.Conf.Log.File,
		MaxSize:    config.Conf.Log.MaxSizeMB,
		MaxBackups: config.Conf.Log.MaxBackups,
		Compress:   true,
	})
}
