package sema

import (
	"fmt"

	"pplc/hir"
)

// Context is a lowering scope.  Contexts form a chain from the innermost
// scope out to the module; lookups that miss in one scope continue in its
// parent.
type Context interface {
	Parent() Context
	Compiler() *Compiler
	Module() *hir.Module

	// Function returns the function being lowered, nil at module level.
	Function() *hir.Function

	// FindTypeHere resolves a type name in this scope only.
	FindTypeHere(name string) hir.Type

	// FindVariableHere resolves a variable or parameter name in this scope
	// only.
	FindVariableHere(name string) hir.Local

	AddType(name string, t hir.Type)
	AddFunction(f *hir.Function)
	AddVariable(v *hir.Variable)

	// MapGeneric binds a generic (or trait self) type to a concrete type in
	// the nearest scope that owns it.
	MapGeneric(from, to hir.Type)

	// GetSpecializedHere applies this scope's generic bindings to t.
	GetSpecializedHere(t hir.Type) hir.Type
}

// baseContext provides the delegating defaults shared by all scopes.
type baseContext struct {
	parent Context
}

func (b *baseContext) Parent() Context {
	return b.parent
}

func (b *baseContext) Compiler() *Compiler {
	return b.parent.Compiler()
}

func (b *baseContext) Module() *hir.Module {
	return b.parent.Module()
}

func (b *baseContext) Function() *hir.Function {
	if b.parent == nil {
		return nil
	}

	return b.parent.Function()
}

func (b *baseContext) FindTypeHere(string) hir.Type {
	return nil
}

func (b *baseContext) FindVariableHere(string) hir.Local {
	return nil
}

func (b *baseContext) AddType(name string, t hir.Type) {
	b.parent.AddType(name, t)
}

func (b *baseContext) AddFunction(f *hir.Function) {
	b.parent.AddFunction(f)
}

func (b *baseContext) AddVariable(v *hir.Variable) {
	b.parent.AddVariable(v)
}

func (b *baseContext) MapGeneric(from, to hir.Type) {
	if b.parent != nil {
		b.parent.MapGeneric(from, to)
	}
}

func (b *baseContext) GetSpecializedHere(t hir.Type) hir.Type {
	return t
}

// -----------------------------------------------------------------------------

// ModuleContext is the outermost scope of a module.  Lookups that miss in
// the module fall through to the builtin module.
type ModuleContext struct {
	compiler *Compiler
	module   *hir.Module
}

// NewModuleContext creates the root context for lowering module.
func NewModuleContext(compiler *Compiler, module *hir.Module) *ModuleContext {
	return &ModuleContext{compiler: compiler, module: module}
}

func (mc *ModuleContext) Parent() Context {
	return nil
}

func (mc *ModuleContext) Compiler() *Compiler {
	return mc.compiler
}

func (mc *ModuleContext) Module() *hir.Module {
	return mc.module
}

func (mc *ModuleContext) Function() *hir.Function {
	return nil
}

func (mc *ModuleContext) FindTypeHere(name string) hir.Type {
	if t := mc.module.TypeNamed(name); t != nil {
		return t
	}

	if b := mc.compiler.Builtin; b != nil && b != mc.module {
		return b.TypeNamed(name)
	}

	return nil
}

func (mc *ModuleContext) FindVariableHere(name string) hir.Local {
	if v := mc.module.VariableNamed(name); v != nil {
		return v
	}

	if b := mc.compiler.Builtin; b != nil && b != mc.module {
		if v := b.VariableNamed(name); v != nil {
			return v
		}
	}

	return nil
}

func (mc *ModuleContext) AddType(name string, t hir.Type) {
	mc.module.Types.Set(name, t)
}

func (mc *ModuleContext) AddFunction(f *hir.Function) {
	mc.module.InsertFunction(f)
}

func (mc *ModuleContext) AddVariable(v *hir.Variable) {
	mc.module.Variables.Set(v.Name, v)
}

func (mc *ModuleContext) MapGeneric(from, to hir.Type) {}

func (mc *ModuleContext) GetSpecializedHere(t hir.Type) hir.Type {
	return t
}

// -----------------------------------------------------------------------------

// FunctionContext scopes the body of a function: its parameters, generic
// types, and declared locals.
type FunctionContext struct {
	baseContext

	Fn *hir.Function

	locals    []hir.Local
	generated int
}

// NewFunctionContext creates the scope for lowering f, with its parameters
// already visible.
func NewFunctionContext(parent Context, f *hir.Function) *FunctionContext {
	fc := &FunctionContext{baseContext: baseContext{parent: parent}, Fn: f}
	for _, p := range f.Parameters() {
		fc.locals = append(fc.locals, p)
	}

	return fc
}

func (fc *FunctionContext) Function() *hir.Function {
	return fc.Fn
}

func (fc *FunctionContext) FindTypeHere(name string) hir.Type {
	for _, g := range fc.Fn.GenericTypes {
		if gt, ok := g.(*hir.GenericType); ok && gt.Name == name {
			return gt
		}
	}

	return nil
}

func (fc *FunctionContext) FindVariableHere(name string) hir.Local {
	// later declarations shadow earlier ones
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].LocalName() == name {
			return fc.locals[i]
		}
	}

	return nil
}

func (fc *FunctionContext) AddVariable(v *hir.Variable) {
	fc.locals = append(fc.locals, v)
}

// newGenericForTrait creates a fresh generated generic constrained by tr,
// used for parameters whose declared type is a trait.
func (fc *FunctionContext) newGenericForTrait(tr *hir.Trait) *hir.GenericType {
	fc.generated++

	name := tr.Name
	if fc.generated > 1 {
		name = fmt.Sprintf("%s'%d", tr.Name, fc.generated)
	}

	g := &hir.GenericType{Name: name, Generated: true, Constraint: tr}
	fc.Fn.GenericTypes = append(fc.Fn.GenericTypes, g)
	return g
}

// -----------------------------------------------------------------------------

// BlockContext scopes a nested statement block so its declarations do not
// leak into the surrounding scope.
type BlockContext struct {
	baseContext
	locals []hir.Local
}

// NewBlockContext creates a nested block scope.
func NewBlockContext(parent Context) *BlockContext {
	return &BlockContext{baseContext: baseContext{parent: parent}}
}

func (bc *BlockContext) FindVariableHere(name string) hir.Local {
	for i := len(bc.locals) - 1; i >= 0; i-- {
		if bc.locals[i].LocalName() == name {
			return bc.locals[i]
		}
	}

	return nil
}

func (bc *BlockContext) AddVariable(v *hir.Variable) {
	bc.locals = append(bc.locals, v)
}

// -----------------------------------------------------------------------------

// TraitContext scopes the body of a trait declaration.  It resolves `Self`
// and registers declared functions with the trait instead of the module.
type TraitContext struct {
	baseContext

	Trait *hir.Trait
	self  *hir.SelfType
}

// NewTraitContext creates the scope for lowering the body of tr.
func NewTraitContext(parent Context, tr *hir.Trait) *TraitContext {
	return &TraitContext{
		baseContext: baseContext{parent: parent},
		Trait:       tr,
		self:        &hir.SelfType{Trait: tr},
	}
}

func (tc *TraitContext) FindTypeHere(name string) hir.Type {
	if name == "Self" {
		return tc.self
	}

	return nil
}

func (tc *TraitContext) AddFunction(f *hir.Function) {
	f.Trait = tc.Trait
	tc.Trait.Functions.Set(f.Name(), f)
}

// -----------------------------------------------------------------------------

type typeBinding struct {
	from hir.Type
	to   hir.Type
}

// GenericContext records bindings of generic types to concrete types, for
// one candidate of an overload resolution or one monomorphization.
type GenericContext struct {
	baseContext

	params   []hir.Type
	bindings []typeBinding
}

// NewGenericContext creates a generic scope owning the given type
// parameters.
func NewGenericContext(parent Context, params []hir.Type) *GenericContext {
	return &GenericContext{baseContext: baseContext{parent: parent}, params: params}
}

// GenericContextForFn creates the generic scope for resolving a call to f:
// its generic types, plus a `Self` slot when f comes from a trait.
func GenericContextForFn(parent Context, f *hir.Function) *GenericContext {
	params := make([]hir.Type, len(f.GenericTypes))
	copy(params, f.GenericTypes)

	if f.Trait != nil {
		params = append(params, &hir.SelfType{Trait: f.Trait})
	}

	return NewGenericContext(parent, params)
}

func (gc *GenericContext) owns(t hir.Type) bool {
	for _, p := range gc.params {
		if p.Equals(t) {
			return true
		}
	}

	return false
}

func (gc *GenericContext) bind(from, to hir.Type) {
	for i, b := range gc.bindings {
		if b.from.Equals(from) {
			gc.bindings[i].to = to
			return
		}
	}

	gc.bindings = append(gc.bindings, typeBinding{from: from, to: to})
}

func (gc *GenericContext) MapGeneric(from, to hir.Type) {
	if gc.owns(from) {
		gc.bind(from, to)
		return
	}

	for c := gc.Parent(); c != nil; c = c.Parent() {
		if outer, ok := c.(*GenericContext); ok && outer.owns(from) {
			outer.bind(from, to)
			return
		}
	}

	gc.bind(from, to)
}

func (gc *GenericContext) GetSpecializedHere(t hir.Type) hir.Type {
	return hir.SpecializeType(t, func(k hir.Type) hir.Type {
		for _, b := range gc.bindings {
			if b.from.Equals(k) {
				return b.to
			}
		}

		return nil
	})
}

// -----------------------------------------------------------------------------

// findType resolves a type name through the context chain.
func findType(ctx Context, name string) hir.Type {
	for c := ctx; c != nil; c = c.Parent() {
		if t := c.FindTypeHere(name); t != nil {
			return t
		}
	}

	return nil
}

// findVariable resolves a variable name through the context chain.
func findVariable(ctx Context, name string) hir.Local {
	for c := ctx; c != nil; c = c.Parent() {
		if v := c.FindVariableHere(name); v != nil {
			return v
		}
	}

	return nil
}

// getSpecialized applies every generic binding in scope to t, innermost
// first.
func getSpecialized(ctx Context, t hir.Type) hir.Type {
	for c := ctx; c != nil; c = c.Parent() {
		t = c.GetSpecializedHere(t)
	}

	return t
}

// functionsWithNParts returns the visible functions with n name parts: the
// module's own plus the builtin module's, in declaration order.
func functionsWithNParts(ctx Context, n int) []*hir.Function {
	fns := ctx.Module().FunctionsWithNParts(n)

	if b := ctx.Compiler().Builtin; b != nil && b != ctx.Module() {
		fns = append(fns, b.FunctionsWithNParts(n)...)
	}

	return fns
}

// functionWithName finds a visible function by its full name.
func functionWithName(ctx Context, name string) *hir.Function {
	if f := ctx.Module().FunctionWithName(name); f != nil {
		return f
	}

	if b := ctx.Compiler().Builtin; b != nil && b != ctx.Module() {
		return b.FunctionWithName(name)
	}

	return nil
}

// fnMatchingSingleParam finds a visible function whose name format matches
// format and whose single parameter, stripped of references, is exactly ty.
func fnMatchingSingleParam(ctx Context, format string, ty hir.Type, mutRef bool) *hir.Function {
	scan := func(m *hir.Module) *hir.Function {
		overloads, ok := m.Functions.Get(format)
		if !ok {
			return nil
		}

		for _, f := range overloads.Values() {
			params := f.Parameters()
			if len(params) != 1 {
				continue
			}

			pty := params[0].Type
			if mutRef && !hir.IsMutReferenceType(pty) {
				continue
			}

			if hir.WithoutRef(pty).Equals(ty) {
				return f
			}
		}

		for _, f := range m.Monomorphized {
			if f.NameFormat() != format {
				continue
			}

			params := f.Parameters()
			if len(params) != 1 {
				continue
			}

			pty := params[0].Type
			if mutRef && !hir.IsMutReferenceType(pty) {
				continue
			}

			if hir.WithoutRef(pty).Equals(ty) {
				return f
			}
		}

		return nil
	}

	if f := scan(ctx.Module()); f != nil {
		return f
	}

	if b := ctx.Compiler().Builtin; b != nil && b != ctx.Module() {
		return scan(b)
	}

	return nil
}

// destructorFor finds the destructor of ty: a `destroy <x>` function whose
// single parameter is `&mut ty`.
func destructorFor(ctx Context, ty hir.Type) *hir.Function {
	return fnMatchingSingleParam(ctx, "destroy <>", ty, true)
}

// cloneFor finds the clone function of ty: a `clone <x>` function whose
// single parameter refers to ty.
func cloneFor(ctx Context, ty hir.Type) *hir.Function {
	return fnMatchingSingleParam(ctx, "clone <>", ty, false)
}
