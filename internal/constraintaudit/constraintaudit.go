// Package constraintaudit implements the Constraint Auditor (spec §4.12):
// for each (type, interface) pair where the interface has a generic
// parameter carrying a new() special constraint — unrepresentable in the
// target structural type system — emit exactly one finding for the pair,
// not one per cloned view member.
package constraintaudit

import (
	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
)

// Run scans every class/struct's declared interfaces and returns one
// warning per (type, interface) pair with an unrepresentable new()
// constraint.
func Run(g *model.SymbolGraph) []*diagnostics.Diagnostic {
	var out []*diagnostics.Diagnostic
	for _, t := range g.AllTypes() {
		if t.Kind != model.Class && t.Kind != model.Struct {
			continue
		}
		for _, ref := range t.DeclaredInterfaces {
			named, ok := ref.(model.NamedRef)
			if !ok {
				continue
			}
			ifaceId := identity.StableIdForNamed(named.Assembly, named)
			iface, found := g.TypeByStableId(ifaceId)
			if !found {
				continue
			}
			if hasNewConstraint(iface) {
				out = append(out, diagnostics.NewWarning(diagnostics.CodeConstraintUnrepresentable,
					diagnostics.Site{Component: "constraintaudit.Run", Path: t.ClrFullName + " : " + iface.ClrFullName},
					"generic parameter of "+iface.ClrFullName+" carries a new() constraint the target type system cannot express"))
			}
		}
	}
	return out
}

func hasNewConstraint(t model.TypeSymbol) bool {
	for _, gp := range t.Generics {
		if gp.RequiresNew {
			return true
		}
	}
	return false
}
