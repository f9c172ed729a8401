package analysis

import "fmt"

// InputShapeMismatchError reports that a reference table does not have the
// row count the main table requires.
type InputShapeMismatchError struct {
	MainPath string
	RefPath  string
	MainRows int
	RefRows  int
}

// Error implements the error interface for InputShapeMismatchError.
func (e *InputShapeMismatchError) Error() string {
	return fmt.Sprintf("input shape mismatch: %s has %d rows but %s has %d; make sure the number of trials in %s matches that of %s",
		e.MainPath, e.MainRows, e.RefPath, e.RefRows, e.RefPath, e.MainPath)
}
