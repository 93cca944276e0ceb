package framework

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger is the generic logging interface. It explicitly avoids including
// Fatal and Fatalf because of the relative brutal nature of os.Exit
// without a chance to clean up.
//
// In general tracing should be preferred to logging, however logging can
// always be valuable.
type Logger interface {
	Debug(...interface{})
	Debugf(string, ...interface{})
	Info(...interface{})
	Infof(string, ...interface{})
	Warn(...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
}

type Noop struct{}

func (nl Noop) Debug(...interface{})          {}
func (nl Noop) Debugf(string, ...interface{}) {}
func (nl Noop) Info(...interface{})           {}
func (nl Noop) Infof(string, ...interface{})  {}
func (nl Noop) Warn(...interface{})           {}
func (nl Noop) Warnf(string, ...interface{})  {}
func (nl Noop) Error(...interface{})          {}
func (nl Noop) Errorf(string, ...interface{}) {}

// Stdout writes one line per entry, prefixed with the level. Out
// defaults to os.Stdout, debug entries are dropped unless Verbose.
type Stdout struct {
	Out     io.Writer
	Verbose bool

	mu sync.Mutex
}

func (s *Stdout) write(level, msg string) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	s.mu.Lock()
	fmt.Fprintf(out, "%-5s %s\n", level, msg)
	s.mu.Unlock()
}

func (s *Stdout) Debug(args ...interface{}) {
	if s.Verbose {
		s.write("DEBUG", fmt.Sprint(args...))
	}
}

func (s *Stdout) Debugf(pattern string, args ...interface{}) {
	if s.Verbose {
		s.write("DEBUG", fmt.Sprintf(pattern, args...))
	}
}

func (s *Stdout) Info(args ...interface{})                   { s.write("INFO", fmt.Sprint(args...)) }
func (s *Stdout) Infof(pattern string, args ...interface{})  { s.write("INFO", fmt.Sprintf(pattern, args...)) }
func (s *Stdout) Warn(args ...interface{})                   { s.write("WARN", fmt.Sprint(args...)) }
func (s *Stdout) Warnf(pattern string, args ...interface{})  { s.write("WARN", fmt.Sprintf(pattern, args...)) }
func (s *Stdout) Error(args ...interface{})                  { s.write("ERROR", fmt.Sprint(args...)) }
func (s *Stdout) Errorf(pattern string, args ...interface{}) { s.write("ERROR", fmt.Sprintf(pattern, args...)) }
