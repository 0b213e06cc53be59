package sema

import (
	"pplc/ast"
	"pplc/hir"
)

// LowerModule lowers a parsed module to HIR: names resolved, types checked,
// generic calls monomorphized, destructors and temporaries inserted.  All
// diagnostics are collected; a best-effort module is returned even when
// lowering fails partway.
func (c *Compiler) LowerModule(m *ast.Module) (*hir.Module, []error) {
	module := hir.NewModule(m.Name)
	c.Modules[m.Name] = module

	d := &definer{
		compiler: c,
		module:   module,
		mctx:     NewModuleContext(c, module),
		fns:      map[*ast.FunctionDecl]*hir.Function{},
	}

	// imports first so the rest of the module can see them
	for _, stmt := range m.Statements {
		if use, ok := stmt.(*ast.Use); ok {
			d.define(use)
		}
	}

	// declare types and traits
	for _, stmt := range m.Statements {
		switch s := stmt.(type) {
		case *ast.TypeDecl:
			d.declareType(s)
		case *ast.TraitDecl:
			d.declareTrait(s)
		}
	}

	// define types
	for _, stmt := range m.Statements {
		if s, ok := stmt.(*ast.TypeDecl); ok {
			d.defineType(s)
		}
	}

	// declare functions and module variables
	for _, stmt := range m.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			d.declareFunction(d.mctx, s)
		case *ast.VariableDecl:
			d.declareVariable(s)
		}
	}

	// define traits
	for _, stmt := range m.Statements {
		if s, ok := stmt.(*ast.TraitDecl); ok {
			d.defineTrait(s)
		}
	}

	// define functions and module variables
	for _, stmt := range m.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			d.defineFunction(d.mctx, s)
		case *ast.VariableDecl:
			d.defineVariable(s)
		}
	}

	// everything else runs at module scope
	for _, stmt := range m.Statements {
		switch stmt.(type) {
		case *ast.Use, *ast.TypeDecl, *ast.TraitDecl, *ast.FunctionDecl, *ast.VariableDecl:
		default:
			d.define(stmt)
		}
	}

	if len(d.errors) == 0 {
		insertTemporaries(module)
		insertDestructors(d.mctx, module)
	}

	return module, d.errors
}

// definer drives the ordered declare and define steps of one module.
type definer struct {
	compiler *Compiler
	module   *hir.Module
	mctx     *ModuleContext

	fns    map[*ast.FunctionDecl]*hir.Function
	errors []error
}

func (d *definer) report(err error) {
	if err != nil {
		d.errors = append(d.errors, err)
	}
}

// define lowers a non-declaration statement, monomorphizes it, and appends
// it to the module.
func (d *definer) define(stmt ast.Statement) {
	lowered, err := lowerStatement(d.mctx, stmt)
	if err != nil {
		d.report(err)
		return
	}

	lowered = monomorphizeStatement(d.mctx, lowered)
	d.module.Statements = append(d.module.Statements, lowered)
}

func (d *definer) lowerAnnotations(anns []ast.Annotation, f *hir.Function) error {
	for i := range anns {
		ann := &anns[i]

		switch ann.Name.Name {
		case "mangle_as":
			if f == nil || len(ann.Args) != 1 {
				return &UnknownAnnotation{Name: ann.Name.Name, At: ann.Name.Span()}
			}

			lit, ok := ann.Args[0].(*ast.Literal)
			if !ok || lit.Kind != ast.LitString {
				return &UnknownAnnotation{Name: ann.Name.Name, At: ann.Name.Span()}
			}

			f.MangledName = lit.Value
		case "builtin":
			// handled where the declaration is created
		default:
			return &UnknownAnnotation{Name: ann.Name.Name, At: ann.Name.Span()}
		}
	}

	return nil
}

func hasBuiltinAnnotation(anns []ast.Annotation) bool {
	for i := range anns {
		if anns[i].Name.Name == "builtin" {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// classContext exposes a class's generic parameters while its members are
// lowered.
type classContext struct {
	baseContext
	params []hir.Type
}

func (cc *classContext) FindTypeHere(name string) hir.Type {
	for _, p := range cc.params {
		if g, ok := p.(*hir.GenericType); ok && g.Name == name {
			return g
		}
	}

	return nil
}

func (d *definer) lowerGenericParams(ctx Context, params []ast.GenericParam) ([]hir.Type, error) {
	var out []hir.Type

	for i := range params {
		gp := &params[i]

		var constraint *hir.Trait
		if gp.Constraint != nil {
			ty, err := lowerTypeRef(ctx, gp.Constraint)
			if err != nil {
				return nil, err
			}

			tr, ok := ty.(*hir.Trait)
			if !ok {
				return nil, &UnknownType{Name: gp.Constraint.Name.Name, At: gp.Constraint.Span()}
			}

			constraint = tr
		}

		out = append(out, &hir.GenericType{Name: gp.Name.Name, Constraint: constraint})
	}

	return out, nil
}

func (d *definer) declareType(decl *ast.TypeDecl) {
	cls := &hir.Class{Basename: decl.Name.Name}

	if hasBuiltinAnnotation(decl.Annotations) {
		cls.Builtin = hir.BuiltinKindOf(decl.Name.Name)
	}

	if err := d.lowerAnnotations(decl.Annotations, nil); err != nil {
		d.report(err)
	}

	params, err := d.lowerGenericParams(d.mctx, decl.GenericParams)
	if err != nil {
		d.report(err)
		return
	}

	cls.GenericParams = params
	d.mctx.AddType(cls.Basename, cls)
}

func (d *definer) declareTrait(decl *ast.TraitDecl) {
	d.mctx.AddType(decl.Name.Name, hir.NewTrait(decl.Name.Name))
}

func (d *definer) defineType(decl *ast.TypeDecl) {
	t := d.module.TypeNamed(decl.Name.Name)

	cls, ok := t.(*hir.Class)
	if !ok {
		return
	}

	cctx := &classContext{baseContext: baseContext{parent: d.mctx}, params: cls.GenericParams}

	for i := range decl.Members {
		member := &decl.Members[i]

		ty, err := lowerTypeRef(cctx, member.Ty)
		if err != nil {
			d.report(err)
			continue
		}

		cls.Members = append(cls.Members, &hir.Member{Name: member.Name.Name, Ty: ty})
	}
}

// -----------------------------------------------------------------------------

func (d *definer) declareFunction(parent Context, decl *ast.FunctionDecl) {
	f := &hir.Function{Return: hir.Unknown}

	generics, err := d.lowerGenericParams(parent, decl.GenericParams)
	if err != nil {
		d.report(err)
		return
	}

	f.GenericTypes = generics

	fctx := NewFunctionContext(parent, f)

	for _, part := range decl.NameParts {
		switch p := part.(type) {
		case *ast.FnNameWord:
			f.NameParts = append(f.NameParts, &hir.TextPart{Text: p.Name})
		case *ast.FnNameParam:
			ty, err := lowerTypeRef(fctx, p.Ty)
			if err != nil {
				d.report(err)
				return
			}

			// a parameter declared with a trait type really takes any
			// implementer, so it becomes a fresh constrained generic
			if tr, ok := ty.(*hir.Trait); ok {
				ty = fctx.newGenericForTrait(tr)
			}

			name := ""
			if p.Name != nil {
				name = p.Name.Name
			}

			f.NameParts = append(f.NameParts, &hir.ParameterPart{
				Parameter: &hir.Parameter{Name: name, Type: ty},
			})
		}
	}

	switch {
	case decl.ReturnType != nil:
		ret, err := lowerTypeRef(fctx, decl.ReturnType)
		if err != nil {
			d.report(err)
			return
		}

		f.Return = ret
	case decl.HasBody && decl.ImplicitReturn:
		// deduced when the body is defined
	default:
		f.Return = d.compiler.noneType()
	}

	if err := d.lowerAnnotations(decl.Annotations, f); err != nil {
		d.report(err)
		return
	}

	d.fns[decl] = f
	parent.AddFunction(f)
}

func (d *definer) defineFunction(parent Context, decl *ast.FunctionDecl) {
	f := d.fns[decl]
	if f == nil || !decl.HasBody {
		return
	}

	fctx := NewFunctionContext(parent, f)

	body, err := lowerBody(fctx, decl.Body)
	if err != nil {
		d.report(err)
		return
	}

	if decl.ImplicitReturn && len(body) > 0 {
		if es, ok := body[len(body)-1].(*hir.ExpressionStmt); ok {
			value := es.Expr

			if _, unknown := f.Return.(*hir.UnknownType); unknown {
				ret := getSpecialized(fctx, value.Ty())
				if _, still := ret.(*hir.UnknownType); still {
					d.report(&CantDeduceReturnType{At: es.Expr.Span()})
					return
				}

				f.Return = ret
			} else {
				value, err = convertReturnValue(fctx, value, f.Return)
				if err != nil {
					d.report(&ReturnTypeMismatch{
						Got:      es.Expr.Ty(),
						Expected: f.Return,
						At:       es.Expr.Span(),
					})
					return
				}
			}

			body[len(body)-1] = &hir.Return{Value: value, Implicit: true}
		}
	}

	if _, unknown := f.Return.(*hir.UnknownType); unknown {
		f.Return = d.compiler.noneType()
	}

	f.Body = body
	f.Defined = true

	if !f.IsGeneric() {
		f.Body = monomorphizeBody(d.mctx, f.Body)
	}
}

func (d *definer) defineTrait(decl *ast.TraitDecl) {
	t := d.module.TypeNamed(decl.Name.Name)

	tr, ok := t.(*hir.Trait)
	if !ok {
		return
	}

	tctx := NewTraitContext(d.mctx, tr)

	for _, fd := range decl.Functions {
		d.declareFunction(tctx, fd)
	}

	for _, fd := range decl.Functions {
		d.defineFunction(tctx, fd)
	}
}

// -----------------------------------------------------------------------------

func (d *definer) declareVariable(decl *ast.VariableDecl) {
	if err := d.lowerAnnotations(decl.Annotations, nil); err != nil {
		d.report(err)
		return
	}

	v := &hir.Variable{Name: decl.Name.Name, Mut: decl.Mutable, Type: hir.Unknown}
	d.mctx.AddVariable(v)
}

func (d *definer) defineVariable(decl *ast.VariableDecl) {
	v := d.module.VariableNamed(decl.Name.Name)
	if v == nil {
		return
	}

	init, err := lowerExpression(d.mctx, decl.Initializer)
	if err != nil {
		d.report(err)
		return
	}

	if decl.TypeRef != nil {
		ty, err := lowerTypeRef(d.mctx, decl.TypeRef)
		if err != nil {
			d.report(err)
			return
		}

		init, err = convert(d.mctx, init, ty)
		if err != nil {
			d.report(err)
			return
		}

		v.Type = ty
	} else {
		v.Type = init.Ty()
	}

	v.Initializer = init

	stmt := monomorphizeStatement(d.mctx, &hir.Declaration{Var: v})
	d.module.Statements = append(d.module.Statements, stmt)
}
