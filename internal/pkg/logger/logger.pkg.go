package logger

import (
	"log"
	"os"
)

const defaultFlags = log.Ldate | log.Ltime | log.Lshortfile

var (
	Info    = log.New(os.Stdout, "INFO: ", defaultFlags)
	Warning = log.New(os.Stdout, "WARNING: ", defaultFlags)
	Error   = log.New(os.Stderr, "ERROR: ", defaultFlags)
	Debug   = log.New(os.Stdout, "DEBUG: ", defaultFlags)
	HTTP    = log.New(os.Stdout, "HTTP: ", log.Ldate|log.Ltime)
)

// Setup reinitializes the leveled loggers with their default sinks.
func Setup() {
	Info = log.New(os.Stdout, "INFO: ", defaultFlags)
	Warning = log.New(os.Stdout, "WARNING: ", defaultFlags)
	Error = log.New(os.Stderr, "ERROR: ", defaultFlags)
	Debug = log.New(os.Stdout, "DEBUG: ", defaultFlags)
	HTTP = log.New(os.Stdout, "HTTP: ", log.Ldate|log.Ltime)
}
