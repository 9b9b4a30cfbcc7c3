package config

import "fmt"

// ValidationError is one rejected configuration value
type ValidationError struct {
	Field      string // Config key, also the FINDR_ env suffix (e.g., "names")
	Flag       string // Matching command-line flag (e.g., "--name")
	Value      string // Offending value
	Message    string // Error message
	Suggestion string // Helpful suggestion (optional)
}

// Error names both the flag and the config key, since the value may have
// come from either.
func (e ValidationError) Error() string {
	name := e.Field
	if e.Flag != "" {
		name = fmt.Sprintf("%s (%s)", e.Flag, e.Field)
	}
	msg := fmt.Sprintf("invalid %s %q: %s", name, e.Value, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (%s)", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "invalid configuration"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	result := fmt.Sprintf("found %d configuration errors:", len(e))
	for i, err := range e {
		result += fmt.Sprintf("\n  %d. %s", i+1, err.Error())
	}
	return result
}
