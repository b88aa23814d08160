package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	FileName   string
	ToStdout   bool
	Level      string
	FormatJSON bool

	// ConsoleStderr sends console output to stderr, for processes that own stdout.
	ConsoleStderr bool
}

// Setup configures the global logrus logger. With a file name, output goes to
// a rotating file and optionally also to stdout.
func Setup(params SetupParams) {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.Level))
	logrus.SetOutput(Output(params))
}

func Output(params SetupParams) io.Writer {
	var console io.Writer = os.Stdout
	if params.ConsoleStderr {
		console = os.Stderr
	}
	if params.FileName == "" {
		return console
	}

	fileName := params.FileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	rotating := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   50, // megabytes
		LocalTime: false,
		Compress:  true,
	}
	if params.ToStdout {
		return io.MultiWriter(console, rotating)
	}
	return rotating
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
