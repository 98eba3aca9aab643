package main

import (
	"io"
	"log"
)

const (
	// System prefixes configuration and startup messages
	System = "[system]"
	// Encoder prefixes messages from the PNG to SLIC path
	Encoder = "[encode]"
	// Decoder prefixes messages from the SLIC to PNG path
	Decoder = "[decode]"
)

var verbose bool

// SetupLogging directs log output to w and enables Debugf when v is set.
func SetupLogging(w io.Writer, v bool) {
	log.SetOutput(w)
	log.SetFlags(0)
	verbose = v
}

// Printf delegates to log.Printf
func Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Debugf delegates to log.Printf when verbose logging is on
func Debugf(format string, v ...interface{}) {
	if verbose {
		log.Printf(format, v...)
	}
}

// Fatalf delegates to log.Fatalf
func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}
