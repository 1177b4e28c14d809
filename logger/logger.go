package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	LOG_ENABLE             = "PISM_BATCH_LOGLEVEL"
	LOG_PATH               = "PISM_BATCH_LOGPATH"
	LOG_TIMEOUT            = "PISM_BATCH_LOGTIMEOUT"
	LOG_FILENAME           = "pism-batch.log"
	LOG_DEFAULT_TIMEOUT    = 24
	BATCH_DEBUG_LOGGING    = 10
	BATCH_INFO_LOGGING     = 20
	BATCH_WARNING_LOGGING  = 30
	BATCH_ERROR_LOGGING    = 40
	BATCH_CRITICAL_LOGGING = 50
)

var (
	Log *log.Logger
)

func init() {
	var wrt io.Writer = os.Stderr
	// Generated scripts go to stdout, so the log file is opt-in
	if logPath := os.Getenv(LOG_PATH); len(logPath) > 0 {
		timeout := LOG_DEFAULT_TIMEOUT
		if env := os.Getenv(LOG_TIMEOUT); len(env) > 0 {
			if t, err := strconv.Atoi(env); err == nil {
				timeout = t
			}
		}
		if f, err := openLogFile(filepath.Join(logPath, LOG_FILENAME), timeout); err == nil {
			wrt = io.MultiWriter(os.Stderr, f)
		} else {
			log.Printf("logger cannot open file: %v", err)
		}
	}
	Log = log.New(wrt, "", log.LstdFlags)
}

// openLogFile opens the log file for appending. A file whose RFC3339 tag
// on the first line is older than timeout hours is started over.
func openLogFile(logfile string, timeout int) (*os.File, error) {
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("LogWriter: OpenFile: %w", err)
	}
	if stat, serr := f.Stat(); serr == nil {
		if stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
	}
	return f, nil
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	} else {
		return BATCH_CRITICAL_LOGGING
	}
}

func getLogLevel(level int) string {
	switch level := level; level {
	case BATCH_DEBUG_LOGGING:
		return "DEBUG"
	case BATCH_INFO_LOGGING:
		return "INFO"
	case BATCH_WARNING_LOGGING:
		return "WARNING"
	case BATCH_ERROR_LOGGING:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		data, _ := json.MarshalIndent(v, "", " ")
		Log.Printf("%s %s:\n%s\n", getLogLevel(level), name, data)
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		prefix := getLogLevel(level) + " "
		Log.Printf(prefix+format, a...)
	}
}

func DebugObj(name string, v interface{}) {
	logObj(BATCH_DEBUG_LOGGING, name, v)
}

func DebugPrintf(format string, a ...interface{}) {
	logPrintf(BATCH_DEBUG_LOGGING, format, a...)
}

func InfoObj(name string, v interface{}) {
	logObj(BATCH_INFO_LOGGING, name, v)
}

func InfoPrintf(format string, a ...interface{}) {
	logPrintf(BATCH_INFO_LOGGING, format, a...)
}

func WarningObj(name string, v interface{}) {
	logObj(BATCH_WARNING_LOGGING, name, v)
}

func WarningPrintf(format string, a ...interface{}) {
	logPrintf(BATCH_WARNING_LOGGING, format, a...)
}

func ErrorObj(name string, v interface{}) {
	logObj(BATCH_ERROR_LOGGING, name, v)
}

func ErrorPrintf(format string, a ...interface{}) {
	logPrintf(BATCH_ERROR_LOGGING, format, a...)
}

func CriticalObj(name string, v interface{}) {
	logObj(BATCH_CRITICAL_LOGGING, name, v)
}

func CriticalPrintf(format string, a ...interface{}) {
	logPrintf(BATCH_CRITICAL_LOGGING, format, a...)
}
