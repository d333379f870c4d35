package logx

import "time"

// Logger is the structured logging surface used across the engine.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Field is one key-value attribute attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Any wraps an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// String wraps a string value.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int wraps an int value.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 wraps an int64 value.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 wraps a float64 value.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Time wraps a time.Time value.
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

// Duration wraps a time.Duration value.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}
