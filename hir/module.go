package hir

import "pplc/util"

// Module is a fully lowered source module: the unit consumed by code
// generation.  All registries preserve declaration order.
type Module struct {
	Name       string
	IsBuiltin  bool
	SourceFile string

	Variables *util.OrderedMap[string, *Variable]

	// Types holds classes and traits; they share one namespace.
	Types *util.OrderedMap[string, Type]

	// Functions maps name format to the overloads sharing it, keyed by name.
	Functions *util.OrderedMap[string, *util.OrderedMap[string, *Function]]

	Statements []Statement

	// Monomorphized collects the concrete functions produced from generic
	// originals during monomorphization.
	Monomorphized []*Function
}

// NewModule creates a new empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:      name,
		Variables: util.NewOrderedMap[string, *Variable](),
		Types:     util.NewOrderedMap[string, Type](),
		Functions: util.NewOrderedMap[string, *util.OrderedMap[string, *Function]](),
	}
}

// InsertFunction registers a function under its name format.
func (m *Module) InsertFunction(f *Function) {
	format := f.NameFormat()

	overloads, ok := m.Functions.Get(format)
	if !ok {
		overloads = util.NewOrderedMap[string, *Function]()
		m.Functions.Set(format, overloads)
	}

	overloads.Set(f.Name(), f)
}

// FunctionsWithNParts returns all functions with n name parts, in
// declaration order.
func (m *Module) FunctionsWithNParts(n int) []*Function {
	var fns []*Function

	for _, overloads := range m.Functions.Values() {
		for _, f := range overloads.Values() {
			if len(f.NameParts) == n {
				fns = append(fns, f)
			}
		}
	}

	return fns
}

// FunctionWithName finds a function by its full name, searching
// monomorphizations as well.
func (m *Module) FunctionWithName(name string) *Function {
	for _, overloads := range m.Functions.Values() {
		if f, ok := overloads.Get(name); ok {
			return f
		}
	}

	for _, f := range m.Monomorphized {
		if f.Name() == name {
			return f
		}
	}

	return nil
}

// IterFunctions calls visit for every registered function, declaration order
// first, monomorphizations after.
func (m *Module) IterFunctions(visit func(*Function)) {
	for _, overloads := range m.Functions.Values() {
		for _, f := range overloads.Values() {
			visit(f)
		}
	}

	for _, f := range m.Monomorphized {
		visit(f)
	}
}

// AddMonomorphized records a monomorphization unless one with the same name
// is already known, returning the canonical instance.
func (m *Module) AddMonomorphized(f *Function) *Function {
	name := f.Name()

	for _, existing := range m.Monomorphized {
		if existing.Name() == name {
			return existing
		}
	}

	m.Monomorphized = append(m.Monomorphized, f)
	return f
}

// TypeNamed returns the class or trait with the given name, if any.
func (m *Module) TypeNamed(name string) Type {
	if t, ok := m.Types.Get(name); ok {
		return t
	}

	return nil
}

// VariableNamed returns the module-level variable with the given name.
func (m *Module) VariableNamed(name string) *Variable {
	if v, ok := m.Variables.Get(name); ok {
		return v
	}

	return nil
}
