package sema

import (
	"pplc/hir"
	"pplc/report"
)

// Compiler holds the set of lowered modules and the preloaded builtin
// module that every other module implicitly depends on.
type Compiler struct {
	Modules map[string]*hir.Module
	Builtin *hir.Module
}

// NewCompiler creates a compiler over the given builtin module.
func NewCompiler(builtin *hir.Module) *Compiler {
	return &Compiler{
		Modules: map[string]*hir.Module{},
		Builtin: builtin,
	}
}

// ModuleNamed finds a previously lowered module by name.
func (c *Compiler) ModuleNamed(name string) *hir.Module {
	if c.Builtin != nil && c.Builtin.Name == name {
		return c.Builtin
	}

	return c.Modules[name]
}

// builtinClass looks up a compiler-known class of the builtin module.  While
// the builtin module itself is being lowered it is found through the module
// registry instead.  A miss is a compiler bug.
func (c *Compiler) builtinClass(name string) *hir.Class {
	source := c.Builtin
	if source == nil {
		source = c.Modules["ppl"]
	}

	if source != nil {
		if cls, ok := source.TypeNamed(name).(*hir.Class); ok {
			return cls
		}
	}

	report.ReportICE("builtin type `%s` is not loaded", name)
	return nil
}

func (c *Compiler) noneType() *hir.Class     { return c.builtinClass("None") }
func (c *Compiler) boolType() *hir.Class     { return c.builtinClass("Bool") }
func (c *Compiler) integerType() *hir.Class  { return c.builtinClass("Integer") }
func (c *Compiler) rationalType() *hir.Class { return c.builtinClass("Rational") }
func (c *Compiler) stringType() *hir.Class   { return c.builtinClass("String") }

// specializeWith binds the class's generic parameters to the given arguments
// positionally, producing a concrete specialization.
func specializeWith(cls *hir.Class, args []hir.Type) *hir.Class {
	params := cls.GenericParams

	spec := hir.SpecializeType(cls, func(t hir.Type) hir.Type {
		for i, p := range params {
			if i < len(args) && p.Equals(t) {
				return args[i]
			}
		}

		return nil
	})

	return spec.(*hir.Class)
}

// referenceTo builds the builtin `Reference<T>` type over t.
func (c *Compiler) referenceTo(t hir.Type) hir.Type {
	return specializeWith(c.builtinClass("Reference"), []hir.Type{t})
}

// referenceMutTo builds the builtin `ReferenceMut<T>` type over t.
func (c *Compiler) referenceMutTo(t hir.Type) hir.Type {
	return specializeWith(c.builtinClass("ReferenceMut"), []hir.Type{t})
}

// typeOf builds the runtime type info class `Type<T>` for t.
func (c *Compiler) typeOf(t hir.Type) hir.Type {
	return specializeWith(c.builtinClass("Type"), []hir.Type{t})
}
