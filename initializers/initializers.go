package initializers

import (
	"context"
	"task-flow-backend/config"
	"task-flow-backend/fiberlog"
	counterhandler "task-flow-backend/lib/counter"
	xlsexport "task-flow-backend/lib/export/xls"
	"task-flow-backend/lib/rbac"
	taskhandler "task-flow-backend/lib/task"
	tasknotify "task-flow-backend/lib/task-notify"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	counterhandler.NewHandler(config.Conf.Tasks.CounterBase)
	tasknotify.NewHandler()
	xlsexport.NewHandler()
	rbac.NewHandler()
	taskhandler.NewHandler()
}
