package sema

import (
	"math/big"

	"pplc/hir"
	"pplc/report"
)

// monomorphizeStatement rewrites a lowered statement so that every call
// inside it targets a concrete function and every type reference carries
// runtime type info.
func monomorphizeStatement(ctx Context, stmt hir.Statement) hir.Statement {
	r := &rewriter{ctx: ctx, locals: map[hir.Local]hir.Local{}}
	return r.statement(stmt)
}

// monomorphizeBody rewrites a whole function body.
func monomorphizeBody(ctx Context, body []hir.Statement) []hir.Statement {
	r := &rewriter{ctx: ctx, locals: map[hir.Local]hir.Local{}}
	return r.statements(body)
}

// rewriter walks HIR, substituting bound generic types and replacing generic
// callees with their monomorphizations.  With fresh set it also rebuilds
// every local it meets, producing a body independent of the original.
type rewriter struct {
	ctx    Context
	locals map[hir.Local]hir.Local
	fresh  bool
}

func (r *rewriter) ty(t hir.Type) hir.Type {
	return getSpecialized(r.ctx, t)
}

func (r *rewriter) statements(stmts []hir.Statement) []hir.Statement {
	out := make([]hir.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = r.statement(s)
	}

	return out
}

func (r *rewriter) statement(stmt hir.Statement) hir.Statement {
	switch s := stmt.(type) {
	case *hir.Declaration:
		if r.fresh {
			nv := &hir.Variable{
				Name: s.Var.Name,
				Mut:  s.Var.Mut,
				Type: r.ty(s.Var.Type),
			}
			if s.Var.Initializer != nil {
				nv.Initializer = r.expression(s.Var.Initializer)
			}

			if nv.Type.IsGeneric() && nv.Initializer != nil {
				nv.Type = nv.Initializer.Ty()
			}

			r.locals[s.Var] = nv
			return &hir.Declaration{Var: nv}
		}

		if s.Var.Initializer != nil {
			s.Var.Initializer = r.expression(s.Var.Initializer)
		}

		s.Var.Type = r.ty(s.Var.Type)
		if s.Var.Type.IsGeneric() && s.Var.Initializer != nil {
			s.Var.Type = s.Var.Initializer.Ty()
		}

		return s

	case *hir.ExpressionStmt:
		return &hir.ExpressionStmt{Expr: r.expression(s.Expr)}

	case *hir.Assignment:
		return &hir.Assignment{Target: r.expression(s.Target), Value: r.expression(s.Value)}

	case *hir.Return:
		if s.Value == nil {
			return s
		}

		return &hir.Return{Value: r.expression(s.Value), Implicit: s.Implicit}

	case *hir.If:
		elseIfs := make([]hir.ElseIf, len(s.ElseIfs))
		for i, arm := range s.ElseIfs {
			elseIfs[i] = hir.ElseIf{
				Condition: r.expression(arm.Condition),
				Body:      r.statements(arm.Body),
			}
		}

		return &hir.If{
			Condition: r.expression(s.Condition),
			Body:      r.statements(s.Body),
			ElseIfs:   elseIfs,
			Else:      r.statements(s.Else),
		}

	case *hir.Loop:
		return &hir.Loop{Body: r.statements(s.Body)}

	case *hir.While:
		return &hir.While{Condition: r.expression(s.Condition), Body: r.statements(s.Body)}

	case *hir.Block:
		return &hir.Block{Statements: r.statements(s.Statements)}

	default:
		return stmt
	}
}

func (r *rewriter) expression(expr hir.Expression) hir.Expression {
	switch e := expr.(type) {
	case *hir.VariableReference:
		if nl, ok := r.locals[e.Var]; ok {
			return &hir.VariableReference{Pos: e.Pos, Var: nl}
		}

		return e

	case *hir.ImplicitConversion:
		return &hir.ImplicitConversion{
			Kind:       e.Kind,
			Type:       r.ty(e.Type),
			Expression: r.expression(e.Expression),
		}

	case *hir.MemberReference:
		base := r.expression(e.Base)
		member := e.Member

		if cls, ok := getSpecialized(r.ctx, hir.WithoutRef(base.Ty())).(*hir.Class); ok {
			if e.Index < len(cls.Members) {
				member = cls.Members[e.Index]
			}
		}

		return &hir.MemberReference{Pos: e.Pos, Base: base, Member: member, Index: e.Index}

	case *hir.Constructor:
		cls, ok := r.ty(e.Class).(*hir.Class)
		if !ok {
			cls = e.Class
		}

		inits := make([]*hir.Initializer, len(e.Initializers))
		for i, init := range e.Initializers {
			member := init.Member
			if init.Index < len(cls.Members) {
				member = cls.Members[init.Index]
			}

			inits[i] = &hir.Initializer{
				Pos:    init.Pos,
				Member: member,
				Index:  init.Index,
				Value:  r.expression(init.Value),
			}
		}

		return &hir.Constructor{Pos: e.Pos, Class: cls, Initializers: inits}

	case *hir.TypeReference:
		referenced := r.ty(e.Referenced)
		if referenced.IsGeneric() {
			return &hir.TypeReference{
				Pos:        e.Pos,
				Referenced: referenced,
				TypeFor:    r.ty(e.TypeFor),
			}
		}

		v := typeInfoVariable(r.ctx, referenced, e.Pos)
		return &hir.VariableReference{Pos: e.Pos, Var: v}

	case *hir.Call:
		return r.call(e)

	default:
		return expr
	}
}

func (r *rewriter) call(c *hir.Call) hir.Expression {
	args := make([]hir.Expression, len(c.Args))
	for i, arg := range c.Args {
		args[i] = r.expression(arg)
	}

	f := c.Function
	if !f.IsGeneric() && f.Trait == nil {
		return &hir.Call{Pos: c.Pos, Function: f, Generic: c.Generic, Args: args}
	}

	gc := GenericContextForFn(r.ctx, f)

	params := f.Parameters()
	for i, arg := range args {
		if i < len(params) {
			convertibleTo(gc, arg.Ty(), params[i].Type, arg.Span())
		}
	}

	nf := specializeFunction(r.ctx, gc, f)

	generic := c.Generic
	if nf != f && generic == nil {
		generic = f
	}

	return &hir.Call{Pos: c.Pos, Function: nf, Generic: generic, Args: args}
}

// specializeFunction produces the concrete function a call to f resolves to
// under the bindings in gc.  Trait declarations with a concrete self are
// replaced by their real implementation; generic functions are instantiated
// and recorded with the module.
func specializeFunction(ctx Context, gc *GenericContext, f *hir.Function) *hir.Function {
	if f.Trait != nil && !f.Defined {
		selfTy := getSpecialized(gc, hir.Type(&hir.SelfType{Trait: f.Trait}))

		if !selfTy.IsGeneric() {
			if impl := findImplementation(ctx, f, selfTy); impl != nil {
				implGC := GenericContextForFn(ctx, impl)

				implParams := impl.Parameters()
				for i, p := range f.Parameters() {
					if i < len(implParams) {
						want := getSpecialized(gc, substituteSelf(p.Type, f.Trait, selfTy))
						convertibleTo(implGC, want, implParams[i].Type, nil)
					}
				}

				return specializeFunction(ctx, implGC, impl)
			}
		}
	}

	if !f.IsGeneric() {
		return f
	}

	changed := false
	parts := make([]hir.FunctionNamePart, len(f.NameParts))

	for i, part := range f.NameParts {
		pp, ok := part.(*hir.ParameterPart)
		if !ok {
			parts[i] = part
			continue
		}

		nt := getSpecialized(gc, pp.Parameter.Type)
		if nt == pp.Parameter.Type {
			parts[i] = part
			continue
		}

		changed = true
		parts[i] = &hir.ParameterPart{
			Parameter: &hir.Parameter{Name: pp.Parameter.Name, Type: nt},
		}
	}

	ret := getSpecialized(gc, f.Return)
	changed = changed || ret != f.Return

	if !changed {
		return f
	}

	nf := &hir.Function{
		NameParts:        parts,
		Return:           ret,
		MangledName:      f.MangledName,
		Trait:            f.Trait,
		SpecializationOf: f,
		Defined:          f.Defined,
	}

	for _, g := range f.GenericTypes {
		if s := getSpecialized(gc, g); s.IsGeneric() {
			nf.GenericTypes = append(nf.GenericTypes, s)
		}
	}

	// not all generics were fixed; the call will be revisited once the
	// enclosing function is itself specialized
	if nf.IsGeneric() {
		return f
	}

	if nf.MangledName == "" {
		if existing := functionWithName(ctx, nf.Name()); existing != nil {
			nf.MangledName = existing.MangledName
		}
	}

	// register before rewriting the body so recursion terminates
	canonical := ctx.Module().AddMonomorphized(nf)
	if canonical != nf {
		if f.Defined && !canonical.Defined {
			fillSpecializedBody(gc, f, canonical)
		}

		return canonical
	}

	if f.Defined {
		fillSpecializedBody(gc, f, nf)
	}

	return nf
}

// fillSpecializedBody rewrites the generic original's body into the
// specialization, remapping its parameters.
func fillSpecializedBody(gc *GenericContext, f, nf *hir.Function) {
	r := &rewriter{ctx: gc, locals: map[hir.Local]hir.Local{}, fresh: true}

	nfParams := nf.Parameters()
	for i, p := range f.Parameters() {
		if i < len(nfParams) {
			r.locals[p] = nfParams[i]
		}
	}

	// marked defined up front so recursive calls resolve to nf instead of
	// refilling it
	nf.Defined = true
	nf.Body = r.statements(f.Body)
}

// typeInfoVariable finds or creates the module-level singleton holding the
// runtime type info of ty.
func typeInfoVariable(ctx Context, ty hir.Type, pos *report.TextSpan) *hir.Variable {
	name := "$type@" + ty.Repr()

	module := ctx.Module()
	if v := module.VariableNamed(name); v != nil {
		return v
	}

	c := ctx.Compiler()

	infoCls, ok := c.typeOf(ty).(*hir.Class)
	if !ok || len(infoCls.Members) < 2 {
		report.ReportICE("malformed builtin `Type` class")
	}

	ctor := &hir.Constructor{
		Pos:   pos,
		Class: infoCls,
		Initializers: []*hir.Initializer{
			{
				Pos:    pos,
				Member: infoCls.Members[0],
				Index:  0,
				Value: &hir.Literal{
					Pos:      pos,
					Kind:     hir.LiteralString,
					StrValue: ty.Repr(),
					Type:     c.stringType(),
				},
			},
			{
				Pos:    pos,
				Member: infoCls.Members[1],
				Index:  1,
				Value: &hir.Literal{
					Pos:      pos,
					Kind:     hir.LiteralInteger,
					IntValue: big.NewInt(int64(hir.SizeInBytes(ty))),
					Type:     c.integerType(),
				},
			},
		},
	}

	v := &hir.Variable{Name: name, Type: infoCls, Initializer: ctor}
	module.Variables.Set(name, v)
	module.Statements = append(module.Statements, &hir.Declaration{Var: v})

	return v
}
