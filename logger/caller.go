package logger

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// GetCaller returns "file:line" for the caller depth frames above the function that invokes
//   GetCaller (depth 0 is the line in that function where GetCaller is called; depth 1 is that
//   function's own caller). Call sites resolve this once and pass the
//   string through to LogDepth/LogDepthWithFields so a logging wrapper never shows up as the
//   caller.
func GetCaller(depth int) string {
	_, filePath, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "???"
	}

	parts := strings.Split(filePath, string(os.PathSeparator))
	if l := len(parts); l >= 2 {
		filePath = parts[l-2] + string(os.PathSeparator) + parts[l-1]
	} else if l != 0 {
		filePath = parts[0]
	}

	return fmt.Sprintf("%s:%d", filePath, line)
}
