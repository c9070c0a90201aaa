// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"log"
	"os"

	"github.com/cpmech/gosl/utl"
)

// logFile holds a handle to the errors logger file
var logFile *os.File

// InitLogFile initialises logger
func InitLogFile(dirout, fnamekey string) (err error) {

	// create log file
	logFile, err = os.Create(utl.Sf("%s/%s.log", dirout, fnamekey))
	if err != nil {
		return
	}

	// connect logger to output file
	log.SetOutput(logFile)
	return
}

// FlushLog saves log (flushes to disk)
func FlushLog() {
	if logFile != nil {
		logFile.Close()
	}
}

// LogErr logs error and returns stop flag
func LogErr(err error, msg string) (stop bool) {
	if err != nil {
		fullmsg := "ERROR: " + msg + " : " + err.Error()
		log.Printf(fullmsg)
		return true
	}
	return false
}

// LogErrCond logs error using condition (==true) to stop and returns stop flag
func LogErrCond(condition bool, msg string, prm ...interface{}) (stop bool) {
	if condition {
		fullmsg := "ERROR: " + utl.Sf(msg, prm...)
		log.Printf(fullmsg)
		return true
	}
	return false
}
