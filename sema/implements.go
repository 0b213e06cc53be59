package sema

import (
	"pplc/hir"
	"pplc/report"
)

// checkImplements verifies that ty satisfies every function the trait
// requires.  Trait functions with a default body always count; declarations
// must be matched by a visible implementation for ty.
func checkImplements(ctx Context, ty hir.Type, tr *hir.Trait, at *report.TextSpan) error {
	var unimplemented []string

	for _, f := range tr.Functions.Values() {
		if f.Defined {
			continue
		}

		if findImplementation(ctx, f, ty) == nil {
			unimplemented = append(unimplemented, f.Name())
		}
	}

	if len(unimplemented) > 0 {
		return &NotImplemented{Ty: ty, Trait: tr, Unimplemented: unimplemented, At: at}
	}

	return nil
}

// substituteSelf replaces the trait's self type with ty throughout t.
func substituteSelf(t hir.Type, tr *hir.Trait, ty hir.Type) hir.Type {
	return hir.SpecializeType(t, func(k hir.Type) hir.Type {
		if s, ok := k.(*hir.SelfType); ok && s.Trait == tr {
			return ty
		}

		return nil
	})
}

// findImplementation looks for a visible function implementing the trait
// function traitFn for the concrete type ty.  A match has the same name
// shape, and every parameter and the return type line up once `Self` is
// read as ty.
func findImplementation(ctx Context, traitFn *hir.Function, ty hir.Type) *hir.Function {
	tr := traitFn.Trait

	for _, f := range functionsWithNParts(ctx, len(traitFn.NameParts)) {
		if f == traitFn || f.Trait == tr {
			continue
		}

		if !namePartsAlign(traitFn, f) {
			continue
		}

		gc := GenericContextForFn(ctx, f)

		viable := true
		wantParams := traitFn.Parameters()
		haveParams := f.Parameters()

		for i, want := range wantParams {
			wantTy := substituteSelf(want.Type, tr, ty)

			if ok, _ := convertibleTo(gc, wantTy, haveParams[i].Type, nil); !ok {
				viable = false
				break
			}
		}

		if !viable {
			continue
		}

		wantRet := substituteSelf(traitFn.Return, tr, ty)
		if ok, _ := convertibleTo(gc, f.Return, wantRet, nil); !ok {
			continue
		}

		return f
	}

	return nil
}

// namePartsAlign reports whether two functions share the same word/parameter
// name shape.
func namePartsAlign(a, b *hir.Function) bool {
	if len(a.NameParts) != len(b.NameParts) {
		return false
	}

	for i, part := range a.NameParts {
		switch p := part.(type) {
		case *hir.TextPart:
			other, ok := b.NameParts[i].(*hir.TextPart)
			if !ok || other.Text != p.Text {
				return false
			}
		case *hir.ParameterPart:
			if _, ok := b.NameParts[i].(*hir.ParameterPart); !ok {
				return false
			}
		}
	}

	return true
}
