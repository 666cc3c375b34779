package logger

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

type Config struct {
	Level      LogLevel `json:"level"`
	Format     string   `json:"format"` // json, text
	Output     string   `json:"output"` // stdout, stderr, file path
	TimeFormat string   `json:"time_format"`
	Caller     bool     `json:"caller"`
	Colors     bool     `json:"colors"`
}

func NewLogger(config *Config) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timeFormat,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timeFormat,
			ForceColors:     config.Colors,
			DisableColors:   !config.Colors,
		})
	}

	switch config.Output {
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
	}

	logger.SetReportCaller(config.Caller)

	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}, nil
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) WithSubmissionID(submissionID primitive.ObjectID) *Logger {
	return l.WithField("submission_id", submissionID.Hex())
}

func (l *Logger) WithLoadID(loadID string) *Logger {
	return l.WithField("load_id", loadID)
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) Debug(msg string) {
	l.logger.WithFields(l.fields).Debug(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Debugf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.logger.WithFields(l.fields).Info(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Infof(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.logger.WithFields(l.fields).Warn(msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Warnf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.logger.WithFields(l.fields).Error(msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Errorf(format, args...)
}

func (l *Logger) Fatal(msg string) {
	l.logger.WithFields(l.fields).Fatal(msg)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Fatalf(format, args...)
}

// Structured logging methods for the settlement workflow

func (l *Logger) LogSubmissionEvent(submissionID primitive.ObjectID, event string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"submission_id": submissionID.Hex(),
		"event":         event,
		"type":          "bol_event",
	}

	for k, v := range details {
		fields[k] = v
	}

	l.WithFields(fields).Info("BOL submission event")
}

func (l *Logger) LogInvoiceEvent(invoiceNumber string, event string, amount decimal.Decimal, currency string) {
	l.WithFields(map[string]interface{}{
		"invoice_number": invoiceNumber,
		"event":          event,
		"amount":         amount.String(),
		"currency":       currency,
		"type":           "invoice_event",
	}).Info("Invoice event")
}

func (l *Logger) LogNotificationEvent(submissionID primitive.ObjectID, eventType string, recipientRole string, delivered bool) {
	l.WithFields(map[string]interface{}{
		"submission_id":  submissionID.Hex(),
		"event_type":     eventType,
		"recipient_role": recipientRole,
		"delivered":      delivered,
		"type":           "notification_event",
	}).Info("Notification emitted")
}

func (l *Logger) LogFeeCalculation(loadType string, percentage, dispatchFee decimal.Decimal, overrideApplied bool) {
	l.WithFields(map[string]interface{}{
		"load_type":        loadType,
		"fee_percentage":   percentage.String(),
		"dispatch_fee":     dispatchFee.String(),
		"override_applied": overrideApplied,
		"type":             "fee_event",
	}).Debug("Dispatch fee computed")
}
