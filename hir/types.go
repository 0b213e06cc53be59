package hir

import (
	"fmt"
	"strings"

	"pplc/util"
)

// Type is the parent interface of all HIR types.
type Type interface {
	// Repr returns the user-facing rendering of the type.
	Repr() string

	// Equals returns whether two types are the same type.
	Equals(other Type) bool

	// IsGeneric returns whether the type mentions any unbound generic,
	// trait self type, or unknown type.
	IsGeneric() bool
}

// -----------------------------------------------------------------------------

// UnknownType is the placeholder for a type that has not been inferred yet.
// It must not survive past the define phase of a successfully lowered module.
type UnknownType struct{}

// Unknown is the shared unknown type instance.
var Unknown Type = &UnknownType{}

func (*UnknownType) Repr() string {
	return "<unknown>"
}

func (*UnknownType) Equals(other Type) bool {
	_, ok := other.(*UnknownType)
	return ok
}

func (*UnknownType) IsGeneric() bool {
	return false
}

// -----------------------------------------------------------------------------

// BuiltinKind identifies the compiler-known classes of the `ppl` module.
type BuiltinKind int

const (
	NotBuiltin BuiltinKind = iota
	BuiltinNone
	BuiltinBool
	BuiltinInteger
	BuiltinRational
	BuiltinString
	BuiltinReference
	BuiltinReferenceMut
	BuiltinTypeInfo
	BuiltinI32
	BuiltinF64

	// BuiltinOther is used for `@builtin` declarations whose name is not one
	// of the recognized builtin names.
	BuiltinOther
)

// BuiltinKindOf maps a `@builtin` type name to its kind.
func BuiltinKindOf(name string) BuiltinKind {
	switch name {
	case "None":
		return BuiltinNone
	case "Bool":
		return BuiltinBool
	case "Integer":
		return BuiltinInteger
	case "Rational":
		return BuiltinRational
	case "String":
		return BuiltinString
	case "Reference":
		return BuiltinReference
	case "ReferenceMut":
		return BuiltinReferenceMut
	case "Type":
		return BuiltinTypeInfo
	case "I32":
		return BuiltinI32
	case "F64":
		return BuiltinF64
	default:
		return BuiltinOther
	}
}

// Member is a named field of a class.
type Member struct {
	Name string
	Ty   Type
}

// Class is a class declaration, possibly a specialization of a generic one.
type Class struct {
	Basename string

	// SpecializationOf points back at the class this one was specialized
	// from, nil for source-level declarations.
	SpecializationOf *Class

	GenericParams []Type
	Builtin       BuiltinKind
	Members       []*Member
}

func (c *Class) Repr() string {
	if len(c.GenericParams) == 0 {
		return c.Basename
	}

	var sb strings.Builder
	sb.WriteString(c.Basename)
	sb.WriteByte('<')

	for i, g := range c.GenericParams {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(g.Repr())
	}

	sb.WriteByte('>')
	return sb.String()
}

// Origin returns the source-level class at the root of the specialization
// chain.
func (c *Class) Origin() *Class {
	for c.SpecializationOf != nil {
		c = c.SpecializationOf
	}

	return c
}

func (c *Class) Equals(other Type) bool {
	oc, ok := other.(*Class)
	if !ok {
		return false
	}

	if c == oc {
		return true
	}

	if c.Basename != oc.Basename || c.Origin() != oc.Origin() {
		return false
	}

	if len(c.GenericParams) != len(oc.GenericParams) {
		return false
	}

	for i, g := range c.GenericParams {
		if !g.Equals(oc.GenericParams[i]) {
			return false
		}
	}

	return true
}

func (c *Class) IsGeneric() bool {
	for _, g := range c.GenericParams {
		if g.IsGeneric() {
			return true
		}
	}

	for _, m := range c.Members {
		if m.Ty.IsGeneric() {
			return true
		}
	}

	return false
}

// IsReference returns whether the class is one of the two builtin reference
// classes.
func (c *Class) IsReference() bool {
	return c.Builtin == BuiltinReference || c.Builtin == BuiltinReferenceMut
}

// MemberNamed finds a member by name.
func (c *Class) MemberNamed(name string) (int, *Member) {
	for i, m := range c.Members {
		if m.Name == name {
			return i, m
		}
	}

	return -1, nil
}

// -----------------------------------------------------------------------------

// Trait is a trait declaration.  Its function map is keyed by function name
// and filled in during the trait's declare and define steps.
type Trait struct {
	Name      string
	Functions *util.OrderedMap[string, *Function]
}

// NewTrait creates a new empty trait.
func NewTrait(name string) *Trait {
	return &Trait{Name: name, Functions: util.NewOrderedMap[string, *Function]()}
}

func (t *Trait) Repr() string {
	return t.Name
}

func (t *Trait) Equals(other Type) bool {
	ot, ok := other.(*Trait)
	return ok && t == ot
}

func (t *Trait) IsGeneric() bool {
	return false
}

// FunctionsWithNParts returns the trait's functions that have n name parts.
func (t *Trait) FunctionsWithNParts(n int) []*Function {
	return util.Filter(t.Functions.Values(), func(f *Function) bool {
		return len(f.NameParts) == n
	})
}

// -----------------------------------------------------------------------------

// SelfType is the `Self` placeholder inside a trait body.  It is substituted
// with the concrete implementer at use sites.
type SelfType struct {
	Trait *Trait
}

func (s *SelfType) Repr() string {
	return "Self"
}

func (s *SelfType) Equals(other Type) bool {
	os, ok := other.(*SelfType)
	return ok && s.Trait == os.Trait
}

func (s *SelfType) IsGeneric() bool {
	return true
}

// -----------------------------------------------------------------------------

// GenericType is a named generic parameter, optionally bounded by a trait.
type GenericType struct {
	Name string

	// Generated marks generics the compiler created for trait-typed
	// parameters rather than ones written by the user.
	Generated bool

	Constraint *Trait
}

func (g *GenericType) Repr() string {
	return g.Name
}

func (g *GenericType) Equals(other Type) bool {
	og, ok := other.(*GenericType)
	if !ok {
		return false
	}

	if g.Name != og.Name || g.Generated != og.Generated {
		return false
	}

	return g.Constraint == og.Constraint
}

func (g *GenericType) IsGeneric() bool {
	return true
}

// -----------------------------------------------------------------------------

// FuncType is the type of a function value.
type FuncType struct {
	Params []Type
	Return Type
}

func (f *FuncType) Repr() string {
	params := util.Map(f.Params, func(p Type) string { return p.Repr() })
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Return.Repr())
}

func (f *FuncType) Equals(other Type) bool {
	of, ok := other.(*FuncType)
	if !ok || len(f.Params) != len(of.Params) {
		return false
	}

	for i, p := range f.Params {
		if !p.Equals(of.Params[i]) {
			return false
		}
	}

	return f.Return.Equals(of.Return)
}

func (f *FuncType) IsGeneric() bool {
	for _, p := range f.Params {
		if p.IsGeneric() {
			return true
		}
	}

	return f.Return.IsGeneric()
}

// -----------------------------------------------------------------------------

// IsReferenceType returns whether the type is a reference class.
func IsReferenceType(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.IsReference()
}

// IsMutReferenceType returns whether the type is the mutable reference class.
func IsMutReferenceType(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.Builtin == BuiltinReferenceMut
}

// WithoutRef strips one reference layer off the type, if any.
func WithoutRef(t Type) Type {
	if c, ok := t.(*Class); ok && c.IsReference() && len(c.GenericParams) == 1 {
		return c.GenericParams[0]
	}

	return t
}

// IsBuiltinClass returns whether the type is the builtin class of the given
// kind.
func IsBuiltinClass(t Type, kind BuiltinKind) bool {
	c, ok := t.(*Class)
	return ok && c.Builtin == kind
}

// SizeInBytes returns the byte size of a value of the type, used for the
// `size` field of runtime type info.
func SizeInBytes(t Type) int {
	c, ok := t.(*Class)
	if !ok {
		return 8
	}

	switch c.Builtin {
	case BuiltinNone:
		return 0
	case BuiltinBool:
		return 1
	case BuiltinI32:
		return 4
	case NotBuiltin:
		size := 0
		for _, m := range c.Members {
			size += SizeInBytes(m.Ty)
		}

		return size
	default:
		// heap-backed builtins and references are a single pointer
		return 8
	}
}

// SpecializeType substitutes generic, self, and trait types through subst,
// rebuilding classes and function types structurally.  Unchanged types are
// returned as-is so pointer identity is preserved for concrete types.
func SpecializeType(t Type, subst func(Type) Type) Type {
	switch v := t.(type) {
	case *GenericType, *SelfType, *Trait:
		if s := subst(t); s != nil {
			return s
		}

		return t
	case *Class:
		return specializeClass(v, subst)
	case *FuncType:
		changed := false

		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = SpecializeType(p, subst)
			changed = changed || params[i] != p
		}

		ret := SpecializeType(v.Return, subst)
		if !changed && ret == v.Return {
			return v
		}

		return &FuncType{Params: params, Return: ret}
	default:
		return t
	}
}

func specializeClass(c *Class, subst func(Type) Type) Type {
	if !c.IsGeneric() {
		return c
	}

	changed := false

	params := make([]Type, len(c.GenericParams))
	for i, g := range c.GenericParams {
		params[i] = SpecializeType(g, subst)
		changed = changed || params[i] != g
	}

	members := make([]*Member, len(c.Members))
	for i, m := range c.Members {
		mty := SpecializeType(m.Ty, subst)
		if mty != m.Ty {
			changed = true
			members[i] = &Member{Name: m.Name, Ty: mty}
		} else {
			members[i] = m
		}
	}

	if !changed {
		return c
	}

	return &Class{
		Basename:         c.Basename,
		SpecializationOf: c,
		GenericParams:    params,
		Builtin:          c.Builtin,
		Members:          members,
	}
}
