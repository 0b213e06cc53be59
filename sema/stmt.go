package sema

import (
	"pplc/ast"
	"pplc/hir"
	"pplc/report"
)

// lowerStatement lowers a single AST statement within the given scope.
func lowerStatement(ctx Context, stmt ast.Statement) (hir.Statement, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		expr, err := lowerExpression(ctx, s.Expr)
		if err != nil {
			return nil, err
		}

		return &hir.ExpressionStmt{Expr: expr}, nil

	case *ast.VariableDecl:
		return lowerLocalDecl(ctx, s)

	case *ast.Assignment:
		return lowerAssignment(ctx, s)

	case *ast.Return:
		return lowerReturn(ctx, s)

	case *ast.If:
		return lowerIf(ctx, s)

	case *ast.Loop:
		body, err := lowerBody(NewBlockContext(ctx), s.Body)
		if err != nil {
			return nil, err
		}

		return &hir.Loop{Body: body}, nil

	case *ast.While:
		cond, err := lowerCondition(ctx, s.Condition)
		if err != nil {
			return nil, err
		}

		body, err := lowerBody(NewBlockContext(ctx), s.Body)
		if err != nil {
			return nil, err
		}

		return &hir.While{Condition: cond, Body: body}, nil

	case *ast.Use:
		return lowerUse(ctx, s)

	default:
		report.ReportICE("unexpected statement node %T", stmt)
		return nil, nil
	}
}

// lowerBody lowers a statement list, stopping at the first error.
func lowerBody(ctx Context, stmts []ast.Statement) ([]hir.Statement, error) {
	var body []hir.Statement

	for _, stmt := range stmts {
		lowered, err := lowerStatement(ctx, stmt)
		if err != nil {
			return nil, err
		}

		body = append(body, lowered)
	}

	return body, nil
}

// lowerLocalDecl lowers a `let` inside a body.  Unlike module-level
// variables, locals are declared and defined in one step.
func lowerLocalDecl(ctx Context, decl *ast.VariableDecl) (hir.Statement, error) {
	v := &hir.Variable{Name: decl.Name.Name, Mut: decl.Mutable, Type: hir.Unknown}

	init, err := lowerExpression(ctx, decl.Initializer)
	if err != nil {
		return nil, err
	}

	if decl.TypeRef != nil {
		ty, err := lowerTypeRef(ctx, decl.TypeRef)
		if err != nil {
			return nil, err
		}

		init, err = convert(ctx, init, ty)
		if err != nil {
			return nil, err
		}

		v.Type = ty
	} else {
		v.Type = getSpecialized(ctx, init.Ty())
	}

	v.Initializer = init
	ctx.AddVariable(v)

	return &hir.Declaration{Var: v}, nil
}

func lowerAssignment(ctx Context, assign *ast.Assignment) (hir.Statement, error) {
	target, err := lowerExpression(ctx, assign.Target)
	if err != nil {
		return nil, err
	}

	if !target.Mutable() {
		return nil, &AssignmentToImmutable{At: assign.Target.Span()}
	}

	value, err := lowerExpression(ctx, assign.Value)
	if err != nil {
		return nil, err
	}

	value, err = convert(ctx, value, hir.WithoutRef(target.Ty()))
	if err != nil {
		return nil, err
	}

	return &hir.Assignment{Target: target, Value: value}, nil
}

func lowerReturn(ctx Context, ret *ast.Return) (hir.Statement, error) {
	f := ctx.Function()
	if f == nil {
		return nil, &ReturnOutsideFunction{At: ret.Span()}
	}

	if ret.Value == nil {
		if !hir.IsBuiltinClass(f.Return, hir.BuiltinNone) {
			return nil, &MissingReturnValue{Expected: f.Return, At: ret.Span()}
		}

		return &hir.Return{}, nil
	}

	value, err := lowerExpression(ctx, ret.Value)
	if err != nil {
		return nil, err
	}

	converted, err := convertReturnValue(ctx, value, f.Return)
	if err != nil {
		if _, mismatch := err.(*TypeMismatch); mismatch {
			return nil, &ReturnTypeMismatch{
				Got:      value.Ty(),
				Expected: f.Return,
				At:       ret.Value.Span(),
			}
		}

		return nil, err
	}

	return &hir.Return{Value: converted}, nil
}

// convertReturnValue converts a returned value to the function's return type.
// A returned local already matching the return type moves out of the function
// with its value, so it is not cloned.
func convertReturnValue(ctx Context, value hir.Expression, to hir.Type) (hir.Expression, error) {
	if vr, ok := value.(*hir.VariableReference); ok && !isModuleVariable(ctx, vr.Var) {
		from := getSpecialized(ctx, value.Ty())
		target := getSpecialized(ctx, to)

		if !hir.IsReferenceType(from) && !hir.IsReferenceType(target) && from.Equals(target) {
			return value, nil
		}
	}

	return convert(ctx, value, to)
}

func isModuleVariable(ctx Context, l hir.Local) bool {
	v, ok := l.(*hir.Variable)
	return ok && ctx.Module().VariableNamed(v.Name) == v
}

func lowerIf(ctx Context, stmt *ast.If) (hir.Statement, error) {
	cond, err := lowerCondition(ctx, stmt.Condition)
	if err != nil {
		return nil, err
	}

	body, err := lowerBody(NewBlockContext(ctx), stmt.Body)
	if err != nil {
		return nil, err
	}

	var elseIfs []hir.ElseIf
	for _, arm := range stmt.ElseIfs {
		armCond, err := lowerCondition(ctx, arm.Condition)
		if err != nil {
			return nil, err
		}

		armBody, err := lowerBody(NewBlockContext(ctx), arm.Body)
		if err != nil {
			return nil, err
		}

		elseIfs = append(elseIfs, hir.ElseIf{Condition: armCond, Body: armBody})
	}

	var elseBody []hir.Statement
	if len(stmt.Else) > 0 {
		elseBody, err = lowerBody(NewBlockContext(ctx), stmt.Else)
		if err != nil {
			return nil, err
		}
	}

	return &hir.If{Condition: cond, Body: body, ElseIfs: elseIfs, Else: elseBody}, nil
}

// lowerUse imports a declaration (or, with a wildcard, every declaration) of
// another module into the current one.
func lowerUse(ctx Context, use *ast.Use) (hir.Statement, error) {
	if len(use.Path) != 2 && !(len(use.Path) == 1 && use.Wildcard) {
		return nil, &UnresolvedImport{Name: use.Path[0].Name, At: use.Span()}
	}

	moduleName := use.Path[0].Name

	from := ctx.Compiler().ModuleNamed(moduleName)
	if from == nil {
		return nil, &UnresolvedImport{Name: moduleName, At: use.Path[0].Span()}
	}

	module := ctx.Module()

	if use.Wildcard {
		for _, name := range from.Types.Keys() {
			t, _ := from.Types.Get(name)
			module.Types.Set(name, t)
		}

		for _, name := range from.Variables.Keys() {
			v, _ := from.Variables.Get(name)
			module.Variables.Set(name, v)
		}

		from.IterFunctions(func(f *hir.Function) {
			module.InsertFunction(f)
		})

		return &hir.Use{ModuleName: moduleName, Imported: "*"}, nil
	}

	name := use.Path[1].Name

	if v := from.VariableNamed(name); v != nil {
		module.Variables.Set(name, v)
	} else if t := from.TypeNamed(name); t != nil {
		module.Types.Set(name, t)
	} else if fns := functionsNamed(from, name); len(fns) > 0 {
		for _, f := range fns {
			module.InsertFunction(f)
		}
	} else {
		return nil, &UnresolvedImport{Name: name, At: use.Path[1].Span()}
	}

	return &hir.Use{ModuleName: moduleName, Imported: name}, nil
}

// functionsNamed collects every overload whose name contains word as a text
// part, so `use geometry.distance` imports all `distance …` functions.
func functionsNamed(m *hir.Module, word string) []*hir.Function {
	var fns []*hir.Function

	m.IterFunctions(func(f *hir.Function) {
		for _, part := range f.NameParts {
			if tp, ok := part.(*hir.TextPart); ok && tp.Text == word {
				fns = append(fns, f)
				return
			}
		}
	})

	return fns
}
