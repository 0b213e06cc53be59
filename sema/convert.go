package sema

import (
	"pplc/hir"
	"pplc/report"
)

// convertibleTo reports whether a value of type from can be implicitly
// converted to to, recording any generic bindings the conversion implies in
// the context.  A non-nil error carries a reason worth surfacing, such as an
// unimplemented trait.
func convertibleTo(ctx Context, from, to hir.Type, at *report.TextSpan) (bool, error) {
	from = getSpecialized(ctx, hir.WithoutRef(from))
	to = getSpecialized(ctx, hir.WithoutRef(to))

	if _, ok := to.(*hir.UnknownType); ok {
		return true, nil
	}

	if from.Equals(to) {
		return true, nil
	}

	switch target := to.(type) {
	case *hir.GenericType:
		if g, ok := from.(*hir.GenericType); ok {
			if target.Constraint != nil && g.Constraint != target.Constraint {
				return false, nil
			}

			ctx.MapGeneric(target, from)
			return true, nil
		}

		if target.Constraint != nil {
			if err := checkImplements(ctx, from, target.Constraint, at); err != nil {
				return false, err
			}
		}

		ctx.MapGeneric(target, from)
		return true, nil

	case *hir.SelfType:
		if g, ok := from.(*hir.GenericType); ok {
			if g.Constraint != target.Trait {
				return false, &NotImplemented{Ty: from, Trait: target.Trait, At: at}
			}

			ctx.MapGeneric(target, from)
			return true, nil
		}

		if err := checkImplements(ctx, from, target.Trait, at); err != nil {
			return false, err
		}

		ctx.MapGeneric(target, from)
		return true, nil

	case *hir.Trait:
		if g, ok := from.(*hir.GenericType); ok {
			if g.Constraint == target {
				return true, nil
			}

			return false, &NotImplemented{Ty: from, Trait: target, At: at}
		}

		if err := checkImplements(ctx, from, target, at); err != nil {
			return false, err
		}

		return true, nil

	case *hir.Class:
		fc, ok := from.(*hir.Class)
		if !ok {
			return false, nil
		}

		if fc.Origin() == target.Origin() && len(fc.GenericParams) == len(target.GenericParams) {
			for i, g := range fc.GenericParams {
				ok, err := convertibleTo(ctx, g, target.GenericParams[i], at)
				if !ok {
					return false, err
				}
			}

			return true, nil
		}

		return fc.Equals(target), nil
	}

	return false, nil
}

// convert checks that expr is convertible to the type to and wraps it in the
// implicit conversions the target shape requires.
func convert(ctx Context, expr hir.Expression, to hir.Type) (hir.Expression, error) {
	from := expr.Ty()

	ok, err := convertibleTo(ctx, from, to, expr.Span())
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &TypeMismatch{
			Got:      getSpecialized(ctx, from),
			Expected: getSpecialized(ctx, to),
			At:       expr.Span(),
		}
	}

	to = getSpecialized(ctx, to)
	if hir.IsMutReferenceType(to) && !expr.Mutable() {
		return nil, &ReferenceMutToImmutable{At: expr.Span()}
	}

	fromRef := hir.IsReferenceType(from)
	toRef := hir.IsReferenceType(to)

	switch {
	case fromRef && toRef:
		return expr, nil

	case fromRef:
		// dereference to get at the value
		return &hir.ImplicitConversion{
			Kind:       hir.ConvDereference,
			Type:       getSpecialized(ctx, hir.WithoutRef(from)),
			Expression: expr,
		}, nil

	case toRef:
		return &hir.ImplicitConversion{
			Kind:       hir.ConvReference,
			Type:       to,
			Expression: expr,
		}, nil

	default:
		return cloneIfNeeded(ctx, expr), nil
	}
}

// isLvalue reports whether the expression names a place rather than a
// freshly produced value.
func isLvalue(expr hir.Expression) bool {
	switch expr.(type) {
	case *hir.VariableReference, *hir.MemberReference:
		return true
	default:
		return false
	}
}

// cloneIfNeeded wraps an lvalue passed by value in a call to its type's
// `clone` function, so ownership of the original is not given away.  Other
// expressions already own their value and pass through unchanged.
func cloneIfNeeded(ctx Context, expr hir.Expression) hir.Expression {
	if !isLvalue(expr) {
		return expr
	}

	ty := getSpecialized(ctx, expr.Ty())

	clone := cloneFor(ctx, ty)
	if clone == nil {
		return &hir.ImplicitConversion{
			Kind:       hir.ConvCopy,
			Type:       ty,
			Expression: expr,
		}
	}

	arg := hir.Expression(expr)
	if hir.IsReferenceType(clone.Parameters()[0].Type) {
		arg = &hir.ImplicitConversion{
			Kind:       hir.ConvReference,
			Type:       ctx.Compiler().referenceTo(ty),
			Expression: expr,
		}
	}

	return &hir.Call{
		Pos:      expr.Span(),
		Function: clone,
		Args:     []hir.Expression{arg},
	}
}
