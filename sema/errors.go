package sema

import (
	"fmt"
	"strings"

	"pplc/hir"
	"pplc/report"
)

// UndefinedVariable reports a name that resolves to nothing.
type UndefinedVariable struct {
	Name string
	At   *report.TextSpan
}

func (e *UndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable `%s`", e.Name)
}

func (e *UndefinedVariable) Span() *report.TextSpan {
	return e.At
}

// UnknownType reports a type name that resolves to nothing.
type UnknownType struct {
	Name string
	At   *report.TextSpan
}

func (e *UnknownType) Error() string {
	return fmt.Sprintf("unknown type `%s`", e.Name)
}

func (e *UnknownType) Span() *report.TextSpan {
	return e.At
}

// UnknownAnnotation reports an annotation the compiler does not recognize.
type UnknownAnnotation struct {
	Name string
	At   *report.TextSpan
}

func (e *UnknownAnnotation) Error() string {
	return fmt.Sprintf("unknown annotation `@%s`", e.Name)
}

func (e *UnknownAnnotation) Span() *report.TextSpan {
	return e.At
}

// UnresolvedImport reports a `use` naming something that does not exist.
type UnresolvedImport struct {
	Name string
	At   *report.TextSpan
}

func (e *UnresolvedImport) Error() string {
	return fmt.Sprintf("unresolved import `%s`", e.Name)
}

func (e *UnresolvedImport) Span() *report.TextSpan {
	return e.At
}

// NoMember reports a member access on a type that has no such member.
type NoMember struct {
	Name string
	Ty   hir.Type
	At   *report.TextSpan
}

func (e *NoMember) Error() string {
	return fmt.Sprintf("type `%s` has no member `%s`", e.Ty.Repr(), e.Name)
}

func (e *NoMember) Span() *report.TextSpan {
	return e.At
}

// CandidateNotViable records why one overload candidate was rejected.
type CandidateNotViable struct {
	Callee *hir.Function
	Reason error
}

func (e *CandidateNotViable) Error() string {
	return fmt.Sprintf("candidate `%s` not viable: %s", e.Callee.Name(), e.Reason)
}

// NoFunction reports a call with no viable callee.  Name renders the call
// with the types of its explicit arguments filled in.
type NoFunction struct {
	Kind       string
	Name       string
	At         *report.TextSpan
	Arguments  []hir.Expression
	Candidates []*CandidateNotViable
}

func (e *NoFunction) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "no %s `%s`", e.Kind, e.Name)

	for _, c := range e.Candidates {
		sb.WriteString("\n\t")
		sb.WriteString(c.Error())
	}

	return sb.String()
}

func (e *NoFunction) Span() *report.TextSpan {
	return e.At
}

// ArgumentTypeMismatch reports an argument that cannot be converted to its
// parameter's type.
type ArgumentTypeMismatch struct {
	Expected hir.Type
	Got      hir.Type
	At       *report.TextSpan
}

func (e *ArgumentTypeMismatch) Error() string {
	return fmt.Sprintf("expected argument of type `%s`, got `%s`", e.Expected.Repr(), e.Got.Repr())
}

func (e *ArgumentTypeMismatch) Span() *report.TextSpan {
	return e.At
}

// ConditionTypeMismatch reports a non-boolean condition.
type ConditionTypeMismatch struct {
	Got hir.Type
	At  *report.TextSpan
}

func (e *ConditionTypeMismatch) Error() string {
	return fmt.Sprintf("condition must be `Bool`, got `%s`", e.Got.Repr())
}

func (e *ConditionTypeMismatch) Span() *report.TextSpan {
	return e.At
}

// NonClassConstructor reports a constructor over something that is not a
// class.
type NonClassConstructor struct {
	Ty hir.Type
	At *report.TextSpan
}

func (e *NonClassConstructor) Error() string {
	return fmt.Sprintf("`%s` is not a class and cannot be constructed", e.Ty.Repr())
}

func (e *NonClassConstructor) Span() *report.TextSpan {
	return e.At
}

// MissingFields reports a constructor that leaves members uninitialized.
type MissingFields struct {
	Ty     hir.Type
	Fields []string
	At     *report.TextSpan
}

func (e *MissingFields) Error() string {
	return fmt.Sprintf(
		"missing fields in constructor of `%s`: %s",
		e.Ty.Repr(), strings.Join(e.Fields, ", "),
	)
}

func (e *MissingFields) Span() *report.TextSpan {
	return e.At
}

// MultipleInitialization reports a member initialized more than once.
type MultipleInitialization struct {
	Name string
	At   *report.TextSpan
}

func (e *MultipleInitialization) Error() string {
	return fmt.Sprintf("member `%s` initialized more than once", e.Name)
}

func (e *MultipleInitialization) Span() *report.TextSpan {
	return e.At
}

// CantDeduceType reports a use of a value whose type could not be inferred
// yet, such as a call to a function defined later with no declared return
// type.
type CantDeduceType struct {
	At *report.TextSpan
}

func (e *CantDeduceType) Error() string {
	return "cannot deduce type"
}

func (e *CantDeduceType) Span() *report.TextSpan {
	return e.At
}

// CantDeduceReturnType reports an implicit-return function whose body's type
// is not known when the function is defined, such as one returning a module
// variable defined later.
type CantDeduceReturnType struct {
	At *report.TextSpan
}

func (e *CantDeduceReturnType) Error() string {
	return "cannot deduce return type"
}

func (e *CantDeduceReturnType) Span() *report.TextSpan {
	return e.At
}

// ReturnTypeMismatch reports a returned value that does not convert to the
// function's return type.
type ReturnTypeMismatch struct {
	Got      hir.Type
	Expected hir.Type
	At       *report.TextSpan
}

func (e *ReturnTypeMismatch) Error() string {
	return fmt.Sprintf("expected return value of type `%s`, got `%s`", e.Expected.Repr(), e.Got.Repr())
}

func (e *ReturnTypeMismatch) Span() *report.TextSpan {
	return e.At
}

// MissingReturnValue reports a bare `return` in a function that returns a
// value.
type MissingReturnValue struct {
	Expected hir.Type
	At       *report.TextSpan
}

func (e *MissingReturnValue) Error() string {
	return fmt.Sprintf("missing return value of type `%s`", e.Expected.Repr())
}

func (e *MissingReturnValue) Span() *report.TextSpan {
	return e.At
}

// ReturnOutsideFunction reports a `return` at module level.
type ReturnOutsideFunction struct {
	At *report.TextSpan
}

func (e *ReturnOutsideFunction) Error() string {
	return "return outside of a function"
}

func (e *ReturnOutsideFunction) Span() *report.TextSpan {
	return e.At
}

// AssignmentToImmutable reports an assignment through an immutable target.
type AssignmentToImmutable struct {
	At *report.TextSpan
}

func (e *AssignmentToImmutable) Error() string {
	return "assignment to an immutable value"
}

func (e *AssignmentToImmutable) Span() *report.TextSpan {
	return e.At
}

// TypeMismatch reports a value that cannot be implicitly converted to the
// type its context expects.
type TypeMismatch struct {
	Got      hir.Type
	Expected hir.Type
	At       *report.TextSpan
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("expected `%s`, got `%s`", e.Expected.Repr(), e.Got.Repr())
}

func (e *TypeMismatch) Span() *report.TextSpan {
	return e.At
}

// ReferenceMutToImmutable reports taking a mutable reference to an immutable
// value.
type ReferenceMutToImmutable struct {
	At *report.TextSpan
}

func (e *ReferenceMutToImmutable) Error() string {
	return "cannot take a mutable reference to an immutable value"
}

func (e *ReferenceMutToImmutable) Span() *report.TextSpan {
	return e.At
}

// NotImplemented reports a type used where a trait it does not implement is
// required.
type NotImplemented struct {
	Ty            hir.Type
	Trait         *hir.Trait
	Unimplemented []string
	At            *report.TextSpan
}

func (e *NotImplemented) Error() string {
	msg := fmt.Sprintf("`%s` does not implement `%s`", e.Ty.Repr(), e.Trait.Name)
	if len(e.Unimplemented) > 0 {
		msg += ": missing " + strings.Join(e.Unimplemented, ", ")
	}

	return msg
}

func (e *NotImplemented) Span() *report.TextSpan {
	return e.At
}
