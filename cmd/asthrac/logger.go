package main

import (
	"fmt"
	"io"
)

// writerLogger is the writer-backed compile.Logger cmd/asthrac wires in,
// printing level-tagged lines the way cmd/tqserver's log.Printf("WARN ...")
// calls do, minus the timestamp prefix the standard logger would add.
type writerLogger struct {
	w io.Writer
}

func newWriterLogger(w io.Writer) *writerLogger {
	return &writerLogger{w: w}
}

func (l *writerLogger) Debugf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "DEBUG "+format+"\n", args...)
}

func (l *writerLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "INFO  "+format+"\n", args...)
}

func (l *writerLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "WARN  "+format+"\n", args...)
}
