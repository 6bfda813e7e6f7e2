package log

import (
	"io"
	"log"
	"strings"
)

// AllowDebug включает вывод сообщений с префиксом [DEBUG].
var AllowDebug = false

var std = log.Default()

// Setup задает вывод лога. Используется в cmd и тестах.
func Setup(debug bool, w io.Writer) {
	AllowDebug = debug
	if w != nil {
		std.SetOutput(w)
	}
}

func Printf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	std.Printf(format, v...)
}

func Fatalf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	std.Fatalf(format, v...)
}

func allowed(s string) bool {
	if AllowDebug {
		return true
	}
	return !strings.HasPrefix(s, "[DEBUG]")
}
