package filter

import (
	"fmt"
)

// CompilationError reports an expression that could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError reports a filter that failed while running against a character
type EvaluationError struct {
	Expression    string
	CharacterName string
	Reason        string
	Err           error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("filter %q on character %q: %s", e.Expression, e.CharacterName, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
