package diag

// Level defines the importance of a diagnostic.
type Level uint8

const (
	// Fatal is for unrecoverable failures.
	Fatal Level = iota
	// Error is for diagnostics that count against the error ceiling.
	Error
	// Warning is for diagnostics that do not fail the run.
	Warning
	// Info is for informational diagnostics, including driver trace output.
	Info
)

func (l Level) String() string {
	switch l {
	case Fatal:
		return "Fatal"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case Info:
		return "Info"
	}
	return "Unknown"
}

// CountsAsError reports whether the level increments the driver's error
// count.
func (l Level) CountsAsError() bool {
	return l == Fatal || l == Error
}
