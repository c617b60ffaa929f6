// Package trace wires MiniLang's compile/run phases to structured
// logging and implements the vm.Tracer interface for --trace
// instruction-level logging (run id, pc and opcode name per step).
package trace

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minilang/minilang/internal/bytecode"
)

// Logger wraps a logrus.Logger with MiniLang's phase-timing and
// instruction-tracing conventions.
type Logger struct {
	log *logrus.Logger
}

// New returns a Logger writing structured fields to stderr. level should
// be one of logrus's level names ("debug", "info", "warn", "error");
// an unrecognized value falls back to "info".
func New(level string) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return &Logger{log: l}
}

// Phase times a named compile/run phase and logs its duration on
// completion. Call the returned function when the phase ends:
//
//	done := logger.Phase("compile")
//	...
//	done()
func (l *Logger) Phase(name string) func() {
	start := time.Now()
	l.log.WithField("phase", name).Debug("phase start")
	return func() {
		l.log.WithFields(logrus.Fields{
			"phase":    name,
			"duration": time.Since(start),
		}).Info("phase complete")
	}
}

// Errorf logs a fatal-diagnostic-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}

// OnRunStart implements vm.Tracer.
func (l *Logger) OnRunStart(runID string, chunk *bytecode.Chunk) {
	l.log.WithFields(logrus.Fields{
		"run_id":        runID,
		"instructions":  len(chunk.Code),
		"register_count": chunk.RegCount,
	}).Debug("run start")
}

// OnInstruction implements vm.Tracer, logging one line per executed
// instruction at debug level (the level --trace raises to).
func (l *Logger) OnInstruction(runID string, pc int, instr bytecode.Instruction) {
	l.log.WithFields(logrus.Fields{
		"run_id": runID,
		"pc":     pc,
		"instr":  instr.Op.String(),
	}).Debug("exec")
}

// OnRunEnd implements vm.Tracer.
func (l *Logger) OnRunEnd(runID string, err error) {
	fields := logrus.Fields{"run_id": runID}
	if err != nil {
		l.log.WithFields(fields).WithError(err).Error("run failed")
		return
	}
	l.log.WithFields(fields).Debug("run complete")
}
