package structure

import (
	"errors"
	"fmt"
)

// ErrUnknownProperty is wrapped when a property name has no handler and the
// caller asked for strict handling.
var ErrUnknownProperty = errors.New("unknown property")

// StructuralError reports an unexpected tag or malformed nesting in the
// input. Resolution of the offending structure cannot continue.
type StructuralError struct {
	Structure string // e.g. "tree 2", "vessel 0"
	Path      Path
	Tag       string
	Msg       string
}

func (e *StructuralError) Error() string {
	msg := "structural violation"
	if e.Structure != "" {
		msg += " in " + e.Structure
	}
	if len(e.Path) > 0 {
		msg += " at " + e.Path.String()
	}
	if e.Tag != "" {
		msg += fmt.Sprintf(" (tag %q)", e.Tag)
	}
	return msg + ": " + e.Msg
}

// DataError reports a numeric inconsistency in otherwise well formed input.
type DataError struct {
	Structure string
	Msg       string
	Have      int
	Want      int
}

func (e *DataError) Error() string {
	msg := "data inconsistency"
	if e.Structure != "" {
		msg += " in " + e.Structure
	}
	msg += ": " + e.Msg
	if e.Have != 0 || e.Want != 0 {
		msg += fmt.Sprintf(" (have %d, want %d)", e.Have, e.Want)
	}
	return msg
}

// InStructure labels a structural or data error with the structure it came
// from. Other errors are returned unchanged.
func InStructure(err error, name string) error {
	var se *StructuralError
	if errors.As(err, &se) && se.Structure == "" {
		cp := *se
		cp.Structure = name
		return &cp
	}
	var de *DataError
	if errors.As(err, &de) && de.Structure == "" {
		cp := *de
		cp.Structure = name
		return &cp
	}
	return err
}
