package logging

import "log"

// Debug enables verbose output. It is set from the DEBUG config key.
var Debug bool

// Debugf logs a formatted message only when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		log.Printf("DEBUG: "+format, v...)
	}
}
