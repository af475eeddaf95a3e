package log

// Color returns the ANSI escape sequence used for terminal output at the
// given level.
func Color(l LogLevel) string {
	switch l {
	case Debug:
		return "\033[36m"
	case Info:
		return "\033[32m"
	case Warn:
		return "\033[33m"
	case Error:
		return "\033[31m"
	case Fatal:
		return "\033[31;1m"
	default:
		return "\033[0m"
	}
}
