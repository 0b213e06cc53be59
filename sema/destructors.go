package sema

import (
	"pplc/hir"
)

// insertDestructors runs destructor insertion over every defined function of
// the module: each owned local and by-value parameter gets exactly one
// destroy call on every path out of its scope, except the path that returns
// the variable itself.
func insertDestructors(ctx Context, m *hir.Module) {
	d := &destructorPass{ctx: ctx}

	m.IterFunctions(func(f *hir.Function) {
		if !f.Defined || f.IsGeneric() {
			return
		}

		var owned []hir.Local
		for _, p := range f.Parameters() {
			owned = append(owned, p)
		}

		f.Body = d.scope(f.Body, nil, owned)
	})
}

type destructorPass struct {
	ctx Context
}

// flatten splices nested blocks into the surrounding statement list, so the
// temporaries they declare share the enclosing scope.
func flatten(stmts []hir.Statement) []hir.Statement {
	var flat []hir.Statement

	for _, s := range stmts {
		if b, ok := s.(*hir.Block); ok {
			flat = append(flat, flatten(b.Statements)...)
		} else {
			flat = append(flat, s)
		}
	}

	return flat
}

// scope processes one statement list.  outer holds variables of enclosing
// scopes, destroyed only when a return leaves them; owned seeds the scope's
// own variables, destroyed when the scope ends.
func (d *destructorPass) scope(stmts []hir.Statement, outer, owned []hir.Local) []hir.Statement {
	declared := owned
	var out []hir.Statement
	returned := false

	for _, stmt := range flatten(stmts) {
		switch s := stmt.(type) {
		case *hir.Declaration:
			out = append(out, s)
			declared = append(declared, s.Var)

		case *hir.Assignment:
			// the value being overwritten dies here
			if dtor := destructorFor(d.ctx, s.Target.Ty()); dtor != nil {
				out = append(out, d.destroyExpr(dtor, s.Target))
			}

			out = append(out, s)

		case *hir.Return:
			var escapes hir.Local
			if vr, ok := s.Value.(*hir.VariableReference); ok {
				escapes = vr.Var
			}

			out = append(out, d.destroyAll(declared, escapes)...)
			out = append(out, d.destroyAll(outer, escapes)...)
			out = append(out, s)
			returned = true

		case *hir.If:
			live := liveSet(outer, declared)

			elseIfs := make([]hir.ElseIf, len(s.ElseIfs))
			for i, arm := range s.ElseIfs {
				elseIfs[i] = hir.ElseIf{
					Condition: arm.Condition,
					Body:      d.scope(arm.Body, live, nil),
				}
			}

			out = append(out, &hir.If{
				Condition: s.Condition,
				Body:      d.scope(s.Body, live, nil),
				ElseIfs:   elseIfs,
				Else:      d.scope(s.Else, live, nil),
			})

		case *hir.Loop:
			out = append(out, &hir.Loop{
				Body: d.scope(s.Body, liveSet(outer, declared), nil),
			})

		case *hir.While:
			out = append(out, &hir.While{
				Condition: s.Condition,
				Body:      d.scope(s.Body, liveSet(outer, declared), nil),
			})

		default:
			out = append(out, stmt)
		}

		// nothing after a return runs
		if returned {
			break
		}
	}

	if !returned {
		out = append(out, d.destroyAll(declared, nil)...)
	}

	return out
}

func liveSet(outer, declared []hir.Local) []hir.Local {
	live := make([]hir.Local, 0, len(outer)+len(declared))
	live = append(live, outer...)
	live = append(live, declared...)
	return live
}

// destroyAll emits destroy calls for the given variables in reverse
// declaration order, skipping the escaping one.
func (d *destructorPass) destroyAll(vars []hir.Local, escapes hir.Local) []hir.Statement {
	var out []hir.Statement

	for i := len(vars) - 1; i >= 0; i-- {
		v := vars[i]
		if v == escapes {
			continue
		}

		if dtor := destructorFor(d.ctx, v.Ty()); dtor != nil {
			out = append(out, d.destroy(dtor, v))
		}
	}

	return out
}

func (d *destructorPass) destroy(dtor *hir.Function, v hir.Local) hir.Statement {
	return d.destroyExpr(dtor, &hir.VariableReference{Var: v})
}

func (d *destructorPass) destroyExpr(dtor *hir.Function, target hir.Expression) hir.Statement {
	return &hir.ExpressionStmt{
		Expr: &hir.Call{
			Pos:      target.Span(),
			Function: dtor,
			Args: []hir.Expression{
				&hir.ImplicitConversion{
					Kind:       hir.ConvReference,
					Type:       d.ctx.Compiler().referenceMutTo(target.Ty()),
					Expression: target,
				},
			},
		},
	}
}
