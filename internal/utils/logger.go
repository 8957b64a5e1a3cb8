package utils

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	debug       bool
	infoLogger  *log.Logger
	debugLogger *log.Logger
	errorLogger *log.Logger
	fatalLogger *log.Logger
}

// NewLogger writes to stdout/stderr plus any extra writers (e.g. a log file).
func NewLogger(debug bool, extra ...io.Writer) *Logger {
	out := io.MultiWriter(append([]io.Writer{os.Stdout}, extra...)...)
	errOut := io.MultiWriter(append([]io.Writer{os.Stderr}, extra...)...)

	return &Logger{
		debug:       debug,
		infoLogger:  log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		debugLogger: log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(errOut, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		fatalLogger: log.New(errOut, "FATAL: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.infoLogger.Println(v...)
}

func (l *Logger) Debug(v ...interface{}) {
	if l.debug {
		l.debugLogger.Println(v...)
	}
}

func (l *Logger) Error(v ...interface{}) {
	l.errorLogger.Println(v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.fatalLogger.Fatalln(v...)
}
