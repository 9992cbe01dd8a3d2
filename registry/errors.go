package registry

import (
	goerrors "errors"
	"fmt"
)

type (
	//IncompleteError signals a resolution attempt blocked on a not yet registered dependency.
	//It is a deferral signal, not a terminal failure: the caller captures a retry and continues.
	IncompleteError struct {
		Kind    string
		Missing string
	}

	//DuplicateError signals re-registration of an already present id
	DuplicateError struct {
		Kind string
		Id   string
	}

	//BuildError wraps the terminal load failure with the offending document and element identity
	BuildError struct {
		Source  string
		Element string
		Origin  error
	}
)

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v %v is not yet registered", e.Kind, e.Missing)
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%v %v is already registered", e.Kind, e.Id)
}

func (e *BuildError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("failed to build %v: %v", e.Source, e.Origin)
	}
	if e.Source == "" {
		return fmt.Sprintf("failed to build %v: %v", e.Element, e.Origin)
	}
	return fmt.Sprintf("failed to build %v in %v: %v", e.Element, e.Source, e.Origin)
}

func (e *BuildError) Unwrap() error {
	return e.Origin
}

//NewIncompleteError creates a deferral signal for a missing dependency
func NewIncompleteError(kind, missing string) *IncompleteError {
	return &IncompleteError{Kind: kind, Missing: missing}
}

//IsIncomplete returns true when err represents a deferrable forward reference failure
func IsIncomplete(err error) bool {
	var incomplete *IncompleteError
	return goerrors.As(err, &incomplete)
}
