package sema

import (
	"math/big"
	"strings"
	"unicode"

	"pplc/ast"
	"pplc/hir"
	"pplc/report"
)

// lowerExpression lowers an AST expression to a typed HIR expression.
func lowerExpression(ctx Context, expr ast.Expression) (hir.Expression, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return lowerLiteral(ctx, e)
	case *ast.VariableReference:
		return lowerVariableReference(ctx, e)
	case *ast.TypeReference:
		return lowerTypeRefExpr(ctx, e)
	case *ast.MemberReference:
		return lowerMemberReference(ctx, e)
	case *ast.Constructor:
		return lowerConstructor(ctx, e)
	case *ast.Call:
		return resolveCall(ctx, e)
	default:
		report.ReportICE("unexpected expression node %T", expr)
		return nil, nil
	}
}

func lowerLiteral(ctx Context, lit *ast.Literal) (hir.Expression, error) {
	c := ctx.Compiler()

	switch lit.Kind {
	case ast.LitNone:
		return &hir.Literal{Pos: lit.Span(), Kind: hir.LiteralNone, Type: c.noneType()}, nil
	case ast.LitBool:
		return &hir.Literal{
			Pos:       lit.Span(),
			Kind:      hir.LiteralBool,
			BoolValue: lit.Value == "true",
			Type:      c.boolType(),
		}, nil
	case ast.LitInteger:
		value, _ := new(big.Int).SetString(lit.Value, 10)
		return &hir.Literal{
			Pos:      lit.Span(),
			Kind:     hir.LiteralInteger,
			IntValue: value,
			Type:     c.integerType(),
		}, nil
	case ast.LitRational:
		value, _ := new(big.Rat).SetString(lit.Value)
		return &hir.Literal{
			Pos:      lit.Span(),
			Kind:     hir.LiteralRational,
			RatValue: value,
			Type:     c.rationalType(),
		}, nil
	default:
		return &hir.Literal{
			Pos:      lit.Span(),
			Kind:     hir.LiteralString,
			StrValue: lit.Value,
			Type:     c.stringType(),
		}, nil
	}
}

// lowerVariableReference resolves a bare name.  A name that is not a
// variable may still be a call to a function whose name is that single word.
func lowerVariableReference(ctx Context, ref *ast.VariableReference) (hir.Expression, error) {
	if v := findVariable(ctx, ref.Name); v != nil {
		return &hir.VariableReference{Pos: ref.Span(), Var: v}, nil
	}

	call := &ast.Call{
		ExprBase:  ast.NewExprBase(ref.Span()),
		Kind:      ast.CallFunction,
		NameParts: []ast.CallNamePart{ast.NewCallNameWord(ref.Name, ref.Span())},
	}

	if expr, err := resolveCall(ctx, call); err == nil {
		return expr, nil
	}

	return nil, &UndefinedVariable{Name: ref.Name, At: ref.Span()}
}

// lowerTypeRef resolves a type reference to a type, specializing generic
// classes with their arguments.
func lowerTypeRef(ctx Context, ref *ast.TypeReference) (hir.Type, error) {
	t := findType(ctx, ref.Name.Name)
	if t == nil {
		return nil, &UnknownType{Name: ref.Name.Name, At: ref.Name.Span()}
	}

	if len(ref.GenericArgs) == 0 {
		return t, nil
	}

	cls, ok := t.(*hir.Class)
	if !ok || len(cls.GenericParams) != len(ref.GenericArgs) {
		return nil, &UnknownType{Name: ref.Name.Name, At: ref.Name.Span()}
	}

	args := make([]hir.Type, len(ref.GenericArgs))
	for i, arg := range ref.GenericArgs {
		ty, err := lowerTypeRef(ctx, arg)
		if err != nil {
			return nil, err
		}

		args[i] = ty
	}

	return specializeWith(cls, args), nil
}

func lowerTypeRefExpr(ctx Context, ref *ast.TypeReference) (hir.Expression, error) {
	t, err := lowerTypeRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &hir.TypeReference{
		Pos:        ref.Span(),
		Referenced: t,
		TypeFor:    ctx.Compiler().typeOf(t),
	}, nil
}

func lowerMemberReference(ctx Context, ref *ast.MemberReference) (hir.Expression, error) {
	base, err := lowerExpression(ctx, ref.Base)
	if err != nil {
		return nil, err
	}

	if hir.IsReferenceType(base.Ty()) {
		base = &hir.ImplicitConversion{
			Kind:       hir.ConvDereference,
			Type:       hir.WithoutRef(base.Ty()),
			Expression: base,
		}
	}

	bty := getSpecialized(ctx, base.Ty())

	cls, ok := bty.(*hir.Class)
	if !ok {
		return nil, &NoMember{Name: ref.Member.Name, Ty: bty, At: ref.Member.Span()}
	}

	index, member := cls.MemberNamed(ref.Member.Name)
	if member == nil {
		return nil, &NoMember{Name: ref.Member.Name, Ty: cls, At: ref.Member.Span()}
	}

	return &hir.MemberReference{
		Pos:    ref.Span(),
		Base:   base,
		Member: member,
		Index:  index,
	}, nil
}

func lowerConstructor(ctx Context, ctor *ast.Constructor) (hir.Expression, error) {
	t, err := lowerTypeRef(ctx, ctor.Ty)
	if err != nil {
		return nil, err
	}

	cls, ok := t.(*hir.Class)
	if !ok {
		return nil, &NonClassConstructor{Ty: t, At: ctor.Ty.Span()}
	}

	gc := NewGenericContext(ctx, cls.GenericParams)

	initialized := map[string]bool{}
	var inits []*hir.Initializer

	for i := range ctor.Initializers {
		init := &ctor.Initializers[i]
		name := init.Name.Name

		index, member := cls.MemberNamed(name)
		if member == nil {
			return nil, &NoMember{Name: name, Ty: cls, At: init.Name.Span()}
		}

		if initialized[name] {
			return nil, &MultipleInitialization{Name: name, At: init.Name.Span()}
		}
		initialized[name] = true

		var value hir.Expression
		if init.Value == nil {
			// `Point { x }` initializes the member from the variable x
			v := findVariable(ctx, name)
			if v == nil {
				return nil, &UndefinedVariable{Name: name, At: init.Name.Span()}
			}

			value = &hir.VariableReference{Pos: init.Name.Span(), Var: v}
		} else {
			value, err = lowerExpression(ctx, init.Value)
			if err != nil {
				return nil, err
			}
		}

		value, err = convert(gc, value, member.Ty)
		if err != nil {
			return nil, err
		}

		inits = append(inits, &hir.Initializer{
			Pos:    init.Name.Span(),
			Member: member,
			Index:  index,
			Value:  value,
		})
	}

	var missing []string
	for _, m := range cls.Members {
		if !initialized[m.Name] {
			missing = append(missing, m.Name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingFields{Ty: cls, Fields: missing, At: ctor.Span()}
	}

	spec, _ := getSpecialized(gc, hir.Type(cls)).(*hir.Class)
	if spec != nil && spec != cls {
		for _, init := range inits {
			init.Member = spec.Members[init.Index]
		}

		cls = spec
	}

	return &hir.Constructor{Pos: ctor.Span(), Class: cls, Initializers: inits}, nil
}

// lowerCondition lowers an expression expected to produce a Bool.
func lowerCondition(ctx Context, expr ast.Expression) (hir.Expression, error) {
	cond, err := lowerExpression(ctx, expr)
	if err != nil {
		return nil, err
	}

	converted, err := convert(ctx, cond, ctx.Compiler().boolType())
	if err != nil {
		if _, mismatch := err.(*TypeMismatch); mismatch {
			return nil, &ConditionTypeMismatch{Got: cond.Ty(), At: expr.Span()}
		}

		return nil, err
	}

	return converted, nil
}

// -----------------------------------------------------------------------------

// callPart is one resolved part of a call: a word, an argument, or a word
// that doubles as an argument (a variable or type name).
type callPart struct {
	text     string
	word     bool
	explicit bool
	arg      hir.Expression
	span     *report.TextSpan
}

func lowerCallParts(ctx Context, parts []ast.CallNamePart) ([]callPart, error) {
	lowered := make([]callPart, 0, len(parts))

	for _, part := range parts {
		switch p := part.(type) {
		case *ast.CallNameWord:
			cp := callPart{text: p.Name, word: true, span: p.Span()}

			if v := findVariable(ctx, p.Name); v != nil {
				cp.arg = &hir.VariableReference{Pos: p.Span(), Var: v}
			} else if first := []rune(p.Name)[0]; unicode.IsUpper(first) {
				if t := findType(ctx, p.Name); t != nil {
					cp.arg = &hir.TypeReference{
						Pos:        p.Span(),
						Referenced: t,
						TypeFor:    ctx.Compiler().typeOf(t),
					}
				}
			}

			lowered = append(lowered, cp)
		case *ast.CallNameArg:
			value, err := lowerExpression(ctx, p.Value)
			if err != nil {
				return nil, err
			}

			lowered = append(lowered, callPart{explicit: true, arg: value, span: p.Span()})
		}
	}

	return lowered, nil
}

// alignsWith reports whether the call parts can be read as this function's
// name: text parts match word for word and every parameter slot lines up
// with a part carrying a value.
func alignsWith(f *hir.Function, parts []callPart) bool {
	if len(f.NameParts) != len(parts) {
		return false
	}

	for i, part := range f.NameParts {
		switch p := part.(type) {
		case *hir.TextPart:
			if !parts[i].word || parts[i].text != p.Text {
				return false
			}
		case *hir.ParameterPart:
			if parts[i].arg == nil {
				return false
			}
		}
	}

	return true
}

// candidateFunctions enumerates the candidates for a call with the given
// parts: visible functions first, then functions of every trait one of the
// arguments carries.
func candidateFunctions(ctx Context, parts []callPart, n int) []*hir.Function {
	fns := functionsWithNParts(ctx, n)

	seen := map[*hir.Function]bool{}
	for _, f := range fns {
		seen[f] = true
	}

	var argTypes []hir.Type
	for _, part := range parts {
		if part.arg != nil {
			argTypes = append(argTypes, getSpecialized(ctx, hir.WithoutRef(part.arg.Ty())))
		}
	}

	addTrait := func(tr *hir.Trait) {
		carried := false
		for _, ty := range argTypes {
			switch at := ty.(type) {
			case *hir.Trait:
				carried = at == tr
			case *hir.SelfType:
				carried = at.Trait == tr
			case *hir.GenericType:
				carried = at.Constraint == tr
			case *hir.Class:
				// any class argument makes the trait's functions worth
				// trying; the self conversion decides viability and records
				// the conformance failure
				carried = true
			}

			if carried {
				break
			}
		}

		if !carried {
			return
		}

		for _, f := range tr.FunctionsWithNParts(n) {
			if !seen[f] {
				seen[f] = true
				fns = append(fns, f)
			}
		}
	}

	for _, t := range ctx.Module().Types.Values() {
		if tr, ok := t.(*hir.Trait); ok {
			addTrait(tr)
		}
	}

	if b := ctx.Compiler().Builtin; b != nil && b != ctx.Module() {
		for _, t := range b.Types.Values() {
			if tr, ok := t.(*hir.Trait); ok {
				addTrait(tr)
			}
		}
	}

	return fns
}

// resolveCall resolves a multi-part call against the visible overloads, in
// order, taking the first candidate whose arguments all convert.
func resolveCall(ctx Context, call *ast.Call) (hir.Expression, error) {
	parts, err := lowerCallParts(ctx, call.NameParts)
	if err != nil {
		return nil, err
	}

	var notViable []*CandidateNotViable

	for _, f := range candidateFunctions(ctx, parts, len(parts)) {
		if !alignsWith(f, parts) {
			continue
		}

		gc := GenericContextForFn(ctx, f)
		params := f.Parameters()

		args := make([]hir.Expression, 0, len(params))
		viable := true

		p := 0
		for i, part := range f.NameParts {
			if _, ok := part.(*hir.ParameterPart); !ok {
				continue
			}

			arg, err := convert(gc, parts[i].arg, params[p].Type)
			if err != nil {
				if tm, ok := err.(*TypeMismatch); ok {
					err = &ArgumentTypeMismatch{Expected: tm.Expected, Got: tm.Got, At: tm.At}
				}

				notViable = append(notViable, &CandidateNotViable{Callee: f, Reason: err})
				viable = false
				break
			}

			args = append(args, arg)
			p++
		}

		if !viable {
			continue
		}

		ret := getSpecialized(gc, f.Return)
		if _, unknown := ret.(*hir.UnknownType); unknown {
			return nil, &CantDeduceType{At: call.Span()}
		}

		return &hir.Call{Pos: call.Span(), Function: f, Args: args}, nil
	}

	kind := "function"
	if call.Kind == ast.CallOperation {
		kind = "operation"
	}

	var formatted []string
	var arguments []hir.Expression

	for _, part := range parts {
		if part.explicit {
			formatted = append(formatted, "<>")
			arguments = append(arguments, part.arg)
		} else {
			formatted = append(formatted, part.text)
		}
	}

	name := strings.Join(formatted, " ")
	for _, arg := range arguments {
		name = strings.Replace(name, "<>", "<:"+arg.Ty().Repr()+">", 1)
	}

	return nil, &NoFunction{
		Kind:       kind,
		Name:       name,
		At:         call.Span(),
		Arguments:  arguments,
		Candidates: notViable,
	}
}
