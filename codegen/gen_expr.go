package codegen

import (
	"fmt"

	"pplc/hir"
	"pplc/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func (g *Generator) generateExpr(expr hir.Expression) value.Value {
	switch e := expr.(type) {
	case *hir.Literal:
		return g.generateLiteral(e)

	case *hir.VariableReference:
		return g.block.NewLoad(g.convType(e.Ty()), g.localAddr(e.Var))

	case *hir.MemberReference:
		return g.block.NewLoad(g.convType(e.Ty()), g.generateAddr(e))

	case *hir.Call:
		return g.generateCall(e)

	case *hir.Constructor:
		return g.generateConstructor(e)

	case *hir.ImplicitConversion:
		return g.generateConversion(e)

	default:
		report.ReportICE("expression %T reached code generation", expr)
		return nil
	}
}

func (g *Generator) generateLiteral(lit *hir.Literal) value.Value {
	switch lit.Kind {
	case hir.LiteralNone:
		return constant.NewInt(types.I1, 0)

	case hir.LiteralBool:
		return constant.NewBool(lit.BoolValue)

	case hir.LiteralInteger:
		from := g.runtime("ppl_integer_from_i64", types.I8Ptr, types.I64)
		return g.block.NewCall(from, constant.NewInt(types.I64, lit.IntValue.Int64()))

	case hir.LiteralRational:
		from := g.runtime("ppl_rational_from_f64", types.I8Ptr, types.Double)
		f, _ := lit.RatValue.Float64()
		return g.block.NewCall(from, constant.NewFloat(types.Double, f))

	default:
		from := g.runtime("ppl_string_from_literal", types.I8Ptr, types.I8Ptr, types.I64)
		data := g.internString(lit.StrValue)
		return g.block.NewCall(from, data, constant.NewInt(types.I64, int64(len(lit.StrValue))))
	}
}

// internString returns an i8* to a null-terminated global holding s.
func (g *Generator) internString(s string) value.Value {
	if v, ok := g.strings[s]; ok {
		return v
	}

	g.nstr++
	global := g.llMod.NewGlobalDef(
		fmt.Sprintf(".str.%d", g.nstr),
		constant.NewCharArrayFromString(s+"\x00"),
	)
	global.Immutable = true

	ptr := constant.NewGetElementPtr(
		global.ContentType, global,
		constant.NewInt(types.I64, 0), constant.NewInt(types.I64, 0),
	)

	g.strings[s] = ptr
	return ptr
}

func (g *Generator) generateCall(call *hir.Call) value.Value {
	callee := g.declareFunction(call.Function)

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.generateExpr(arg)
	}

	result := g.block.NewCall(callee, args...)

	if types.Equal(callee.Sig.RetType, types.Void) {
		// a None value for expression position
		return constant.NewInt(types.I1, 0)
	}

	return result
}

func (g *Generator) generateConstructor(ctor *hir.Constructor) value.Value {
	st := g.convType(ctor.Class)

	slot := g.block.NewAlloca(st)
	for _, init := range ctor.Initializers {
		field := g.block.NewGetElementPtr(
			st, slot,
			constant.NewInt(types.I32, 0),
			constant.NewInt(types.I32, int64(init.Index)),
		)
		g.block.NewStore(g.generateExpr(init.Value), field)
	}

	return g.block.NewLoad(st, slot)
}

func (g *Generator) generateConversion(conv *hir.ImplicitConversion) value.Value {
	switch conv.Kind {
	case hir.ConvReference:
		return g.generateAddr(conv.Expression)

	case hir.ConvDereference:
		ptr := g.generateExpr(conv.Expression)
		return g.block.NewLoad(g.convType(conv.Type), ptr)

	default:
		return g.generateExpr(conv.Expression)
	}
}

// generateAddr produces the address of an lvalue.  Non-lvalue operands were
// already materialized into temporaries before code generation.
func (g *Generator) generateAddr(expr hir.Expression) value.Value {
	switch e := expr.(type) {
	case *hir.VariableReference:
		return g.localAddr(e.Var)

	case *hir.MemberReference:
		base := g.generateAddr(e.Base)
		st := g.convType(hir.WithoutRef(e.Base.Ty()))

		return g.block.NewGetElementPtr(
			st, base,
			constant.NewInt(types.I32, 0),
			constant.NewInt(types.I32, int64(e.Index)),
		)

	case *hir.ImplicitConversion:
		if e.Kind == hir.ConvDereference {
			// the pointer itself is the address
			return g.generateExpr(e.Expression)
		}

		report.ReportICE("cannot take the address of a conversion")
		return nil

	default:
		report.ReportICE("cannot take the address of %T", expr)
		return nil
	}
}

func (g *Generator) localAddr(l hir.Local) value.Value {
	if v, ok := g.locals[l]; ok {
		return v
	}

	if lv, ok := l.(*hir.Variable); ok {
		if v, ok := g.globals[lv]; ok {
			return v
		}
	}

	report.ReportICE("variable `%s` has no storage", l.LocalName())
	return nil
}
