package soapy

/*
#include <SoapySDR/Logger.h>

void soapyRegisterLogBridge(void);
*/
import "C"

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu     sync.RWMutex
	logLogger zerolog.Logger
	logActive bool
)

// ConfigureLogging routes the library's log output, including driver
// messages and streaming status indicators such as "U" (underflow) and "O"
// (overflow), to the given zerolog logger.
func ConfigureLogging(logger zerolog.Logger) {
	logMu.Lock()
	logLogger = logger
	logActive = true
	logMu.Unlock()
	C.soapyRegisterLogBridge()
}

// SetLogLevel sets the threshold below which the library discards messages
// before they reach the handler.
func SetLogLevel(level zerolog.Level) {
	var c C.SoapySDRLogLevel
	switch level {
	case zerolog.TraceLevel:
		c = C.SOAPY_SDR_TRACE
	case zerolog.DebugLevel:
		c = C.SOAPY_SDR_DEBUG
	case zerolog.InfoLevel:
		c = C.SOAPY_SDR_INFO
	case zerolog.WarnLevel:
		c = C.SOAPY_SDR_WARNING
	default:
		c = C.SOAPY_SDR_ERROR
	}
	C.SoapySDR_setLogLevel(c)
}

//export goSoapyLogHandler
func goSoapyLogHandler(level C.SoapySDRLogLevel, message *C.char) {
	logMu.RLock()
	logger, active := logLogger, logActive
	logMu.RUnlock()
	if !active {
		return
	}

	var lvl zerolog.Level
	switch level {
	case C.SOAPY_SDR_FATAL, C.SOAPY_SDR_CRITICAL, C.SOAPY_SDR_ERROR:
		lvl = zerolog.ErrorLevel
	case C.SOAPY_SDR_WARNING:
		lvl = zerolog.WarnLevel
	case C.SOAPY_SDR_NOTICE, C.SOAPY_SDR_INFO, C.SOAPY_SDR_SSI:
		lvl = zerolog.InfoLevel
	case C.SOAPY_SDR_DEBUG, C.SOAPY_SDR_TRACE:
		lvl = zerolog.DebugLevel
	default:
		lvl = zerolog.ErrorLevel
	}

	logger.WithLevel(lvl).Msg(strings.TrimLeft(C.GoString(message), "\r\n"))
}
