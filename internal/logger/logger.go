package logger

import "go.uber.org/zap"

// Logger is the narrow logging surface the rest of the code depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Sync() error
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New builds a zap-backed logger. Production config unless env is
// "development".
func New(env string) (Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &zapLogger{s: l.Sugar()}, nil
}

// Nop discards everything; handy in tests.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
func (l *zapLogger) Sync() error                       { return l.s.Sync() }
