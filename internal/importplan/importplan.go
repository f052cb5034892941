// Package importplan implements the Import/Export Planner (spec §4.10):
// for each namespace, decides the TST name and alias of every type it
// imports from another namespace, classifies each import as value or
// type-only, and computes each namespace's export list.
package importplan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/importgraph"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pathplan"
)

// Import is one imported type inside a namespace's import set.
type Import struct {
	TargetNamespace string
	EmittedName     string
	Alias           string // empty when no alias is needed
	ModuleSpecifier string
	ValueImport     bool
	QualifiedName   string // only meaningful when ValueImport is true
}

// Export is one type a namespace makes visible to importers.
type Export struct {
	EmittedName string
	Arity       int
}

type NamespacePlan struct {
	Namespace string
	Imports   []Import
	Exports   []Export
}

type Plan struct {
	ByNamespace map[string]*NamespacePlan
}

var invalidGarbage = regexp.MustCompile("[\\[\\]]|Culture=|PublicKeyToken=")

// externalTSName derives a TST name for a type the graph could not
// resolve (outside this assembly set): backtick-to-underscore, '+' nested
// separator to '$', then reserved-word sanitization.
func externalTSName(simpleName string) string {
	name := strings.ReplaceAll(simpleName, "`", "_")
	name = strings.ReplaceAll(name, "+", "$")
	name, _ = identity.SanitizeIdentifier(name)
	return name
}

// Build derives one NamespacePlan per namespace in g, given the Import
// Graph already built and the renamer holding final names from Name
// Reservation.
func Build(g *model.SymbolGraph, ig *importgraph.Graph, renamer *naming.Renamer, pol ImportPolicy) (*Plan, []*diagnostics.Diagnostic) {
	var diags []*diagnostics.Diagnostic
	out := &Plan{ByNamespace: make(map[string]*NamespacePlan)}

	for _, ns := range g.Namespaces {
		out.ByNamespace[ns.Name] = &NamespacePlan{Namespace: ns.Name}
		for _, t := range ns.Types {
			out.ByNamespace[ns.Name].Exports = append(out.ByNamespace[ns.Name].Exports, Export{
				EmittedName: t.EmitName,
				Arity:       t.Arity,
			})
		}
	}

	type importKey struct{ ns, name string }
	seen := make(map[string]map[importKey]*Import)

	for _, cr := range ig.CrossRefs {
		plan := out.ByNamespace[cr.SourceNamespace]
		if plan == nil {
			plan = &NamespacePlan{Namespace: cr.SourceNamespace}
			out.ByNamespace[cr.SourceNamespace] = plan
		}
		if cr.TargetNamespace == cr.SourceNamespace {
			continue
		}

		emittedName := cr.TargetType
		hasView := false
		if !cr.TargetId.IsZero() {
			if t, ok := g.TypeByStableId(cr.TargetId); ok {
				emittedName = t.EmitName
				hasView = len(t.ExplicitViews) > 0
			} else if name, err := renamer.GetFinalType(cr.TargetId, model.NamespaceScope(cr.TargetNamespace, model.Public)); err == nil {
				emittedName = name
			}
		} else {
			emittedName = externalTSName(cr.TargetType)
		}

		if invalidGarbage.MatchString(emittedName) {
			diags = append(diags, diagnostics.NewError(diagnostics.CodeInvalidImportModPath,
				diagnostics.Site{Component: "importplan.Build", Path: cr.SourceType},
				"computed import name "+emittedName+" contains assembly-qualified garbage"))
			continue
		}

		if seen[cr.SourceNamespace] == nil {
			seen[cr.SourceNamespace] = make(map[importKey]*Import)
		}
		key := importKey{cr.TargetNamespace, emittedName}
		imp, found := seen[cr.SourceNamespace][key]
		if !found {
			imp = &Import{
				TargetNamespace: cr.TargetNamespace,
				EmittedName:     emittedName,
				ModuleSpecifier: pathplan.Specifier(cr.SourceNamespace, cr.TargetNamespace),
			}
			seen[cr.SourceNamespace][key] = imp
			plan.Imports = append(plan.Imports, *imp)
		}

		isValue := cr.Kind == importgraph.RefBaseType || cr.Kind == importgraph.RefInterface
		idx := findImport(plan.Imports, key)
		if isValue {
			plan.Imports[idx].ValueImport = true
			qualified := emittedName
			if hasView {
				qualified += "$instance"
			}
			plan.Imports[idx].QualifiedName = cr.TargetNamespace + "." + emittedName + "." + qualified
		}
	}

	for _, plan := range out.ByNamespace {
		assignAliases(plan, pol.UnconditionalAlias)
		sort.Slice(plan.Exports, func(i, j int) bool { return plan.Exports[i].EmittedName < plan.Exports[j].EmittedName })
		sort.Slice(plan.Imports, func(i, j int) bool {
			if plan.Imports[i].TargetNamespace != plan.Imports[j].TargetNamespace {
				return plan.Imports[i].TargetNamespace < plan.Imports[j].TargetNamespace
			}
			return plan.Imports[i].EmittedName < plan.Imports[j].EmittedName
		})
	}
	return out, diags
}

func findImport(imports []Import, key struct{ ns, name string }) int {
	for i, imp := range imports {
		if imp.TargetNamespace == key.ns && imp.EmittedName == key.name {
			return i
		}
	}
	return -1
}

// assignAliases gives every import whose EmittedName collides with
// another import in the same namespace a namespace-qualified alias, or
// every import one when unconditional aliasing is requested by policy.
func assignAliases(plan *NamespacePlan, unconditional bool) {
	byName := make(map[string]int)
	for _, imp := range plan.Imports {
		byName[imp.EmittedName]++
	}
	for i, imp := range plan.Imports {
		if unconditional || byName[imp.EmittedName] > 1 {
			plan.Imports[i].Alias = imp.TargetNamespace + "_" + imp.EmittedName
		}
	}
}

// ImportPolicy is the minimal slice of policy the planner consults; kept
// narrow so this package doesn't need the whole policy.Policy type.
type ImportPolicy struct {
	UnconditionalAlias bool
}
