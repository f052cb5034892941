// Package gate implements the Validation Gate (spec §4.14): the final
// check run after the Plan stage. Any Error-severity diagnostic fails the
// run and emission is skipped.
package gate

import (
	"sort"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/importgraph"
	"github.com/tsoniclang/tsbindgen/internal/importplan"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// Summary is the machine-readable per-code count the Gate persists
// alongside the human-readable diagnostic dump.
type Summary struct {
	CountsByCode map[diagnostics.Code]int
	Failed       bool
}

// Run checks the graph, import plan, and import graph against every gate
// invariant, appends findings to bag, and returns whether the run failed
// (any Error-severity diagnostic was added, here or previously in bag).
func Run(g *model.SymbolGraph, plan *importplan.Plan, ig *importgraph.Graph, bag *diagnostics.Bag) Summary {
	checkTypeNames(g, bag)
	checkReservedWords(g, bag)
	checkMemberNames(g, bag)
	checkViewCoverage(g, bag)
	checkIndexers(g, bag)
	checkViewNames(g, bag)
	checkImportCycles(ig, bag)
	checkImportGarbage(plan, bag)

	return Summary{
		CountsByCode: bag.CountsByCode(),
		Failed:       bag.HasErrors(),
	}
}

func checkTypeNames(g *model.SymbolGraph, bag *diagnostics.Bag) {
	byNamespaceName := make(map[string]map[string]bool)
	for _, ns := range g.Namespaces {
		if byNamespaceName[ns.Name] == nil {
			byNamespaceName[ns.Name] = make(map[string]bool)
		}
		for _, t := range ns.Types {
			if t.EmitName == "" {
				bag.Add(diagnostics.NewError(diagnostics.CodeValidationFailed,
					site("gate.TypeNames", t.ClrFullName), "type has no final name"))
				continue
			}
			if byNamespaceName[ns.Name][t.EmitName] {
				bag.Add(diagnostics.NewError(diagnostics.CodeDuplicateMember,
					site("gate.TypeNames", ns.Name+"."+t.EmitName), "two types share a final name within the namespace"))
			}
			byNamespaceName[ns.Name][t.EmitName] = true
		}
	}
}

// checkReservedWords is a defensive invariant check: the Renamer always
// sanitizes through identity.SanitizeIdentifier, so a reserved word
// reaching the Gate unsanitized indicates a Renamer defect, not ordinary
// input.
func checkReservedWords(g *model.SymbolGraph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		if t.EmitName != "" && identity.IsReserved(t.EmitName) {
			bag.Add(diagnostics.NewError(diagnostics.CodeReservedWordUnsanitzd,
				site("gate.ReservedWords", t.ClrFullName), "final type name "+t.EmitName+" is an unsanitized reserved word"))
		}
	}
}

func checkMemberNames(g *model.SymbolGraph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		checkScopeMembers(t, false, bag)
		checkScopeMembers(t, true, bag)
	}
}

func checkScopeMembers(t model.TypeSymbol, static bool, bag *diagnostics.Bag) {
	nonMethodNames := make(map[string]bool)
	erasureKeys := make(map[string]bool)

	record := func(name, kind string, isMethod bool, erasureKey string) {
		if name == "" {
			bag.Add(diagnostics.NewError(diagnostics.CodeUnreservedName,
				site("gate.MemberNames", t.ClrFullName), kind+" has no final name"))
			return
		}
		if isMethod {
			if erasureKeys[erasureKey] {
				bag.Add(diagnostics.NewError(diagnostics.CodeAmbiguousOverload,
					site("gate.MemberNames", t.ClrFullName+"::"+name), "erasure key "+erasureKey+" is not unique"))
			}
			erasureKeys[erasureKey] = true
			return
		}
		if nonMethodNames[name] {
			bag.Add(diagnostics.NewError(diagnostics.CodeDuplicateMember,
				site("gate.MemberNames", t.ClrFullName+"::"+name), "non-method member name is not unique within scope"))
		}
		nonMethodNames[name] = true
	}

	for _, pr := range t.Properties {
		if pr.EmitScope == model.Omitted || pr.EmitScope == model.ViewOnly || pr.IsStatic != static {
			continue
		}
		record(pr.EmitName, "property", false, "")
	}
	for _, f := range t.Fields {
		if f.EmitScope == model.Omitted || f.EmitScope == model.ViewOnly || f.IsStatic != static {
			continue
		}
		record(f.EmitName, "field", false, "")
	}
	for _, ev := range t.Events {
		if ev.EmitScope == model.Omitted || ev.EmitScope == model.ViewOnly || ev.IsStatic != static {
			continue
		}
		record(ev.EmitName, "event", false, "")
	}
	for _, m := range t.Methods {
		if m.EmitScope == model.Omitted || m.EmitScope == model.ViewOnly || m.IsStatic != static {
			continue
		}
		key := signature.ErasureKey(m.EmitName, len(m.Generics), len(m.Parameters))
		record(m.EmitName, "method", true, key)
	}
	if !static {
		for _, v := range t.ExplicitViews {
			record(v.PropertyName, "view property", false, "")
		}
	}
}

func checkViewCoverage(g *model.SymbolGraph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		covered := make(map[model.MemberStableId]model.TypeStableId)
		for _, v := range t.ExplicitViews {
			for _, m := range v.Methods {
				recordCoverage(covered, m.StableId, v.InterfaceId, t, bag)
			}
			for _, pr := range v.Properties {
				recordCoverage(covered, pr.StableId, v.InterfaceId, t, bag)
			}
			for _, ev := range v.Events {
				recordCoverage(covered, ev.StableId, v.InterfaceId, t, bag)
			}
		}
		checkMemberCoverage(t.Methods, func(m model.Method) (model.MemberStableId, model.EmitScope, *model.TypeReference) {
			return m.StableId, m.EmitScope, m.SourceInterface
		}, covered, t, bag)
		checkPropertyCoverage(t.Properties, covered, t, bag)
		checkEventCoverage(t.Events, covered, t, bag)
	}
}

func recordCoverage(covered map[model.MemberStableId]model.TypeStableId, id model.MemberStableId, ifaceId model.TypeStableId, t model.TypeSymbol, bag *diagnostics.Bag) {
	if existing, found := covered[id]; found && existing != ifaceId {
		bag.Add(diagnostics.NewError(diagnostics.CodeViewCoverageDuplicate,
			site("gate.ViewCoverage", t.ClrFullName), "member appears in more than one view"))
	}
	covered[id] = ifaceId
}

func checkMemberCoverage(methods []model.Method, extract func(model.Method) (model.MemberStableId, model.EmitScope, *model.TypeReference), covered map[model.MemberStableId]model.TypeStableId, t model.TypeSymbol, bag *diagnostics.Bag) {
	for _, m := range methods {
		id, scope, src := extract(m)
		if scope == model.ViewOnly && src != nil {
			if _, found := covered[id]; !found {
				bag.Add(diagnostics.NewError(diagnostics.CodeViewCoverageMissing,
					site("gate.ViewCoverage", t.ClrFullName+"::"+m.ClrName), "ViewOnly member with a source interface is missing from every view"))
			}
		}
	}
}

func checkPropertyCoverage(props []model.Property, covered map[model.MemberStableId]model.TypeStableId, t model.TypeSymbol, bag *diagnostics.Bag) {
	for _, pr := range props {
		if pr.EmitScope == model.ViewOnly && pr.SourceInterface != nil {
			if _, found := covered[pr.StableId]; !found {
				bag.Add(diagnostics.NewError(diagnostics.CodeViewCoverageMissing,
					site("gate.ViewCoverage", t.ClrFullName+"::"+pr.ClrName), "ViewOnly property with a source interface is missing from every view"))
			}
		}
	}
}

func checkEventCoverage(events []model.Event, covered map[model.MemberStableId]model.TypeStableId, t model.TypeSymbol, bag *diagnostics.Bag) {
	for _, ev := range events {
		if ev.EmitScope == model.ViewOnly && ev.SourceInterface != nil {
			if _, found := covered[ev.StableId]; !found {
				bag.Add(diagnostics.NewError(diagnostics.CodeViewCoverageMissing,
					site("gate.ViewCoverage", t.ClrFullName+"::"+ev.ClrName), "ViewOnly event with a source interface is missing from every view"))
			}
		}
	}
}

func checkIndexers(g *model.SymbolGraph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		for _, pr := range t.Properties {
			if pr.IsIndexer() && pr.EmitScope == model.ViewOnly {
				bag.Add(diagnostics.NewError(diagnostics.CodeIndexerConflict,
					site("gate.Indexers", t.ClrFullName), "ViewOnly indexer property reached the Gate"))
			}
		}
	}
}

func checkViewNames(g *model.SymbolGraph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		names := make(map[string]bool)
		for _, v := range t.ExplicitViews {
			if v.PropertyName == "" || strings.ContainsAny(v.PropertyName, " \t\n") {
				bag.Add(diagnostics.NewError(diagnostics.CodeViewNameInvalid,
					site("gate.ViewNames", t.ClrFullName), "view property name is empty or invalid: "+v.PropertyName))
				continue
			}
			if names[v.PropertyName] {
				bag.Add(diagnostics.NewError(diagnostics.CodeViewNameInvalid,
					site("gate.ViewNames", t.ClrFullName), "duplicate view property name "+v.PropertyName))
			}
			names[v.PropertyName] = true
		}
	}
}

func checkImportCycles(ig *importgraph.Graph, bag *diagnostics.Bag) {
	if ig == nil {
		return
	}
	var names []string
	for ns := range ig.NamespaceDeps {
		names = append(names, ns)
	}
	sort.Strings(names)

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)
	var path []string
	var dfs func(ns string) bool
	dfs = func(ns string) bool {
		color[ns] = gray
		path = append(path, ns)
		var targets []string
		for t := range ig.NamespaceDeps[ns] {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			switch color[t] {
			case white:
				if dfs(t) {
					return true
				}
			case gray:
				path = append(path, t)
				bag.Add(diagnostics.NewError(diagnostics.CodeCircularNamespace,
					site("gate.ImportCycles", strings.Join(path, " -> ")), "circular namespace dependency detected"))
				return true
			}
		}
		path = path[:len(path)-1]
		color[ns] = black
		return false
	}
	for _, ns := range names {
		if color[ns] == white {
			dfs(ns)
		}
	}
}

func checkImportGarbage(plan *importplan.Plan, bag *diagnostics.Bag) {
	if plan == nil {
		return
	}
	var namespaces []string
	for ns := range plan.ByNamespace {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	for _, ns := range namespaces {
		for _, imp := range plan.ByNamespace[ns].Imports {
			if strings.ContainsAny(imp.EmittedName, "[]") || strings.Contains(imp.EmittedName, "Culture=") || strings.Contains(imp.EmittedName, "PublicKeyToken=") {
				bag.Add(diagnostics.NewError(diagnostics.CodeInvalidImportModPath,
					site("gate.ImportGarbage", ns+" -> "+imp.TargetNamespace), "import name "+imp.EmittedName+" contains assembly-qualified garbage"))
			}
		}
	}
}

func site(component, path string) diagnostics.Site {
	return diagnostics.Site{Component: component, Path: path}
}
