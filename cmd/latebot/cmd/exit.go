package cmd

import "fmt"

// exitStatus is returned by check to signal a specific exit code,
// grep style: 0=match, 1=no match, 2=error.
type exitStatus struct{ code int }

func (e exitStatus) Error() string {
	switch e.code {
	case 0:
		return ""
	case 1:
		return "no match"
	default:
		return fmt.Sprintf("check error (exit %d)", e.code)
	}
}

// ExitCode extracts the exit code from an exitStatus error.
// Returns -1 if the error is not an exitStatus.
func ExitCode(err error) int {
	if es, ok := err.(exitStatus); ok {
		return es.code
	}
	return -1
}
