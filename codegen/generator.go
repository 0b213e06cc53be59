package codegen

import (
	"fmt"

	"pplc/hir"
	"pplc/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// initFuncName is the synthesized function holding the module's top-level
// statements.
const initFuncName = "ppl.module.init"

// Generator lowers a finalized HIR module to an LLVM IR module.
type Generator struct {
	mod   *hir.Module
	llMod *ir.Module
	fn    *ir.Func
	block *ir.Block

	// classes caches the LLVM struct type of every class, keyed by its
	// rendering since specializations are structural.
	classes map[string]types.Type

	// fns maps link names to declared LLVM functions; a mangled name is
	// emitted once no matter how many HIR functions share it.
	fns map[string]*ir.Func

	globals map[*hir.Variable]value.Value
	locals  map[hir.Local]value.Value

	strings map[string]value.Value
	nstr    int
}

// Generate lowers the module to LLVM IR.
func Generate(mod *hir.Module) *ir.Module {
	g := &Generator{
		mod:     mod,
		llMod:   ir.NewModule(),
		classes: map[string]types.Type{},
		fns:     map[string]*ir.Func{},
		globals: map[*hir.Variable]value.Value{},
		strings: map[string]value.Value{},
	}

	g.llMod.SourceFilename = mod.SourceFile

	// declare every concrete function up front so bodies can call in any
	// order
	mod.IterFunctions(func(f *hir.Function) {
		if !f.IsGeneric() {
			g.declareFunction(f)
		}
	})

	for _, name := range mod.Variables.Keys() {
		v, _ := mod.Variables.Get(name)
		g.declareGlobal(v)
	}

	mod.IterFunctions(func(f *hir.Function) {
		if !f.IsGeneric() && f.Defined {
			g.generateBody(f)
		}
	})

	g.generateModuleInit()

	if !mod.IsBuiltin {
		g.generateMain()
	}

	return g.llMod
}

// -----------------------------------------------------------------------------

// convType converts an HIR type to the LLVM type of its values.
func (g *Generator) convType(t hir.Type) types.Type {
	switch v := t.(type) {
	case *hir.Class:
		return g.convClass(v)
	case *hir.GenericType, *hir.SelfType, *hir.Trait, *hir.UnknownType:
		report.ReportICE("abstract type `%s` reached code generation", t.Repr())
		return nil
	default:
		return types.I8Ptr
	}
}

func (g *Generator) convClass(c *hir.Class) types.Type {
	switch c.Builtin {
	case hir.BuiltinNone, hir.BuiltinBool:
		return types.I1
	case hir.BuiltinInteger, hir.BuiltinRational, hir.BuiltinString:
		// opaque runtime handles
		return types.I8Ptr
	case hir.BuiltinI32:
		return types.I32
	case hir.BuiltinF64:
		return types.Double
	case hir.BuiltinReference, hir.BuiltinReferenceMut:
		return types.NewPointer(g.convType(hir.WithoutRef(c)))
	}

	if cached, ok := g.classes[c.Repr()]; ok {
		return cached
	}

	fields := make([]types.Type, len(c.Members))
	for i, m := range c.Members {
		fields[i] = g.convType(m.Ty)
	}

	st := types.NewStruct(fields...)
	def := g.llMod.NewTypeDef(c.Repr(), st)
	g.classes[c.Repr()] = def

	return def
}

// convReturnType converts a return type; None returns become void.
func (g *Generator) convReturnType(t hir.Type) types.Type {
	if hir.IsBuiltinClass(t, hir.BuiltinNone) {
		return types.Void
	}

	return g.convType(t)
}

// -----------------------------------------------------------------------------

func (g *Generator) declareFunction(f *hir.Function) *ir.Func {
	name := f.LinkName()

	if llf, ok := g.fns[name]; ok {
		return llf
	}

	var params []*ir.Param
	for i, p := range f.Parameters() {
		pname := p.Name
		if pname == "" {
			pname = fmt.Sprintf("p%d", i)
		}

		params = append(params, ir.NewParam(pname, g.convType(p.Type)))
	}

	llf := g.llMod.NewFunc(name, g.convReturnType(f.Return), params...)
	g.fns[name] = llf

	return llf
}

func (g *Generator) declareGlobal(v *hir.Variable) {
	t := g.convType(v.Type)
	global := g.llMod.NewGlobalDef(v.Name, constant.NewZeroInitializer(t))
	g.globals[v] = global
}

// runtime declares (once) an external runtime function.
func (g *Generator) runtime(name string, ret types.Type, params ...types.Type) *ir.Func {
	if llf, ok := g.fns[name]; ok {
		return llf
	}

	var irParams []*ir.Param
	for i, p := range params {
		irParams = append(irParams, ir.NewParam(fmt.Sprintf("p%d", i), p))
	}

	llf := g.llMod.NewFunc(name, ret, irParams...)
	g.fns[name] = llf

	return llf
}

// -----------------------------------------------------------------------------

func (g *Generator) generateBody(f *hir.Function) {
	llf := g.fns[f.LinkName()]
	if llf == nil || len(llf.Blocks) > 0 {
		// shared mangled names are generated once
		return
	}

	g.fn = llf
	g.locals = map[hir.Local]value.Value{}
	g.block = llf.NewBlock("entry")

	for i, p := range f.Parameters() {
		slot := g.block.NewAlloca(g.convType(p.Type))
		g.block.NewStore(llf.Params[i], slot)
		g.locals[p] = slot
	}

	g.generateStatements(f.Body)

	if g.block.Term == nil {
		if types.Equal(llf.Sig.RetType, types.Void) {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(constant.NewZeroInitializer(llf.Sig.RetType))
		}
	}
}

// generateModuleInit collects the module-level statements into one init
// function.
func (g *Generator) generateModuleInit() {
	llf := g.llMod.NewFunc(initFuncName, types.Void)
	g.fns[initFuncName] = llf

	g.fn = llf
	g.locals = map[hir.Local]value.Value{}
	g.block = llf.NewBlock("entry")

	g.generateStatements(g.mod.Statements)

	if g.block.Term == nil {
		g.block.NewRet(nil)
	}
}

func (g *Generator) generateMain() {
	main := g.llMod.NewFunc("main", types.I32)
	block := main.NewBlock("entry")
	block.NewCall(g.fns[initFuncName])
	block.NewRet(constant.NewInt(types.I32, 0))
}
