package refetch

import (
	"fmt"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

// Code identifies a violation class so callers can switch on it without
// string-matching messages.
type Code string

const (
	CodeDuplicateFragmentName        Code = "DuplicateFragmentName"
	CodeMalformedArgumentDefinitions Code = "MalformedArgumentDefinitions"
	CodeMissingQueryName             Code = "MissingQueryName"
	CodeCyclicFragmentReference      Code = "CyclicFragmentReference"
	CodeArgumentTypeConflict         Code = "ArgumentTypeConflict"
	CodeUnrecognizedRefetchableRoot  Code = "UnrecognizedRefetchableRoot"
	CodeUndeterminedVariableType     Code = "UndeterminedVariableType"
	CodeUndefinedFragment            Code = "UndefinedFragment"
	CodeUnknownFragmentArgument      Code = "UnknownFragmentArgument"
	CodeSyntaxError                  Code = "SyntaxError"
)

// Class groups codes by blast radius: a structural problem invalidates the
// whole compilation unit, a directive or semantic problem only the fragment
// being transformed.
type Class int

const (
	StructuralError Class = iota
	DirectiveError
	SemanticError
)

// ClassOf maps a code to its error class.
func ClassOf(code Code) Class {
	switch code {
	case CodeDuplicateFragmentName, CodeCyclicFragmentReference,
		CodeUnrecognizedRefetchableRoot, CodeUndefinedFragment, CodeSyntaxError:
		return StructuralError
	case CodeMalformedArgumentDefinitions, CodeMissingQueryName, CodeUnknownFragmentArgument:
		return DirectiveError
	default:
		return SemanticError
	}
}

type Violation struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"positionStart,omitempty"`
	Column  int    `json:"positionEnd,omitempty"`
}

func (v *Violation) Error() string {
	msg := fmt.Sprintf("%s: %s", v.Code, v.Message)
	if v.File != "" {
		msg += fmt.Sprintf(" %s:%d:%d", v.File, v.Line, v.Column)
	}
	return msg
}

type ValidationError []*Violation

func (e ValidationError) Error() string {
	msg := "violations found:\n"
	for _, v := range e {
		msg += "- " + v.Error() + "\n"
	}
	return msg
}

// Core primitive used by all template helpers. pos may be nil.
func violationWithPosition(code Code, message string, pos *language.Position) *Violation {
	v := &Violation{Code: code, Message: message}
	if pos != nil {
		if pos.Src != nil {
			v.File = pos.Src.Name
		}
		v.Line = pos.Line
		v.Column = pos.Column
	}
	return v
}
