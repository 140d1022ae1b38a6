package events

import (
	"maps"
	"slices"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
)

// watermillLogger lets Watermill log through logger.Logger. Watermill's
// info output is routine polling noise, so it is logged at debug.
type watermillLogger struct{ log logger.Logger }

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.log.Error("watermill: "+msg, append(fieldArgs(fields), "error", err)...)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.log.Debug("watermill: "+msg, fieldArgs(fields)...)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.log.Debug("watermill: "+msg, fieldArgs(fields)...)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.log.Debug("watermill: "+msg, fieldArgs(fields)...)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{log: l.log.With(fieldArgs(fields)...)}
}

// fieldArgs flattens fields into key/value args in key order.
func fieldArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	return args
}
