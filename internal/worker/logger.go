package worker

import (
	"fmt"

	"go.uber.org/zap"
)

// asynqZapLogger adapts a zap logger to the asynq.Logger interface.
type asynqZapLogger struct {
	logger *zap.SugaredLogger
}

func newAsynqLogger(l *zap.Logger) *asynqZapLogger {
	return &asynqZapLogger{logger: l.Sugar()}
}

func (a *asynqZapLogger) Debug(args ...interface{}) { a.logger.Debug(fmt.Sprint(args...)) }
func (a *asynqZapLogger) Info(args ...interface{})  { a.logger.Info(fmt.Sprint(args...)) }
func (a *asynqZapLogger) Warn(args ...interface{})  { a.logger.Warn(fmt.Sprint(args...)) }
func (a *asynqZapLogger) Error(args ...interface{}) { a.logger.Error(fmt.Sprint(args...)) }
func (a *asynqZapLogger) Fatal(args ...interface{}) { a.logger.Fatal(fmt.Sprint(args...)) }
