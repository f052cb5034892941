// Package emitboundary implements the Emit boundary (spec §6): accepts an
// EmissionPlan{SymbolGraph, ImportPlan, EmitOrder} and produces, per
// namespace, a declaration file, a public facade re-export, a metadata
// sidecar, and a binding sidecar. The printer takes namespaces and types
// in EmitOrder (never the graph's own slice order for those); members
// within a type are written in the type's own slice order, and
// EmitOrder.MembersByType is not consulted.
package emitboundary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/emitorder"
	"github.com/tsoniclang/tsbindgen/internal/importplan"
	"github.com/tsoniclang/tsbindgen/internal/model"
)

// EmissionPlan bundles the three inputs the Emit boundary consumes,
// matching the triple spec §6 names.
type EmissionPlan struct {
	Graph      *model.SymbolGraph
	ImportPlan *importplan.Plan
	EmitOrder  *emitorder.Plan
}

// MemberMeta is one member's metadata-sidecar row.
type MemberMeta struct {
	EmitName    string `json:"emit_name"`
	ClrName     string `json:"clr_name"`
	Kind        string `json:"kind"`
	IsVirtual   bool   `json:"is_virtual,omitempty"`
	IsOverride  bool   `json:"is_override,omitempty"`
	IsStatic    bool   `json:"is_static,omitempty"`
	HasRefOut   bool   `json:"has_ref_out,omitempty"`
	Visibility  string `json:"visibility"`
	Signature   string `json:"canonical_signature"`
}

// TypeMeta is one type's metadata-sidecar entry.
type TypeMeta struct {
	EmitName string       `json:"emit_name"`
	ClrName  string       `json:"clr_name"`
	Members  []MemberMeta `json:"members"`
}

// BindingEntry maps one final TST name back to its CLR origin.
type BindingEntry struct {
	EmitName string `json:"emit_name"`
	ClrName  string `json:"clr_name"`
	Arity    int    `json:"arity,omitempty"`
}

// Writer writes a namespace's artifacts to a directory tree. The only
// implementation is FileWriter; the interface exists so tests can swap in
// an in-memory writer without touching a filesystem.
type Writer interface {
	WriteNamespace(outDir string, ns model.NamespaceSymbol, order []model.TypeStableId, imports []importplan.Import, exports []importplan.Export) error
}

// FileWriter writes every artifact under outDir, one subdirectory per
// namespace (the same scheme internal/pathplan computes module specifiers
// against): "_root" for the root namespace, "<ns>/internal/index"
// otherwise.
type FileWriter struct{}

// Emit writes every namespace's artifacts under outDir and returns the
// list of namespace directories written, in Namespaces order.
func Emit(plan EmissionPlan, outDir string, w Writer) ([]string, error) {
	if w == nil {
		w = FileWriter{}
	}
	var written []string
	byName := make(map[string]model.NamespaceSymbol, len(plan.Graph.Namespaces))
	for _, ns := range plan.Graph.Namespaces {
		byName[ns.Name] = ns
	}
	for _, nsName := range plan.EmitOrder.Namespaces {
		ns := byName[nsName]
		nsPlan := plan.ImportPlan.ByNamespace[nsName]
		var imports []importplan.Import
		var exports []importplan.Export
		if nsPlan != nil {
			imports, exports = nsPlan.Imports, nsPlan.Exports
		}
		dir := namespaceDir(outDir, nsName)
		if err := w.WriteNamespace(dir, ns, plan.EmitOrder.TypesByNamespace[nsName], imports, exports); err != nil {
			return written, err
		}
		written = append(written, dir)
	}
	return written, nil
}

func namespaceDir(outDir, ns string) string {
	if ns == "" {
		return filepath.Join(outDir, "_root")
	}
	return filepath.Join(outDir, filepath.FromSlash(ns), "internal", "index")
}

func (FileWriter) WriteNamespace(outDir string, ns model.NamespaceSymbol, order []model.TypeStableId, imports []importplan.Import, exports []importplan.Export) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	byId := make(map[model.TypeStableId]model.TypeSymbol, len(ns.Types))
	for _, t := range ns.Types {
		byId[t.StableId] = t
	}

	var decl, facade strings.Builder
	var metas []TypeMeta
	var bindings []BindingEntry

	for _, imp := range imports {
		writeImport(&decl, imp)
	}

	for _, id := range order {
		t, ok := byId[id]
		if !ok {
			continue
		}
		writeDeclaration(&decl, t)
		facade.WriteString("export { " + t.EmitName + " } from \"./index\";\n")
		metas = append(metas, buildTypeMeta(t))
		bindings = append(bindings, BindingEntry{EmitName: t.EmitName, ClrName: t.ClrFullName, Arity: t.Arity})
	}
	_ = exports

	if err := os.WriteFile(filepath.Join(outDir, "index.d.ts"), []byte(decl.String()), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "facade.ts"), []byte(facade.String()), 0o644); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "metadata.json"), metas); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, "bindings.json"), bindings); err != nil {
		return err
	}
	return nil
}

func writeImport(w *strings.Builder, imp importplan.Import) {
	name := imp.EmittedName
	if imp.Alias != "" {
		name += " as " + imp.Alias
	}
	kind := "type "
	if imp.ValueImport {
		kind = ""
	}
	w.WriteString("import " + kind + "{ " + name + " } from \"" + imp.ModuleSpecifier + "\";\n")
}

func writeDeclaration(w *strings.Builder, t model.TypeSymbol) {
	w.WriteString("export interface " + t.EmitName + " {\n")
	for _, f := range t.Fields {
		if f.EmitScope == model.Omitted || f.EmitScope == model.ViewOnly {
			continue
		}
		w.WriteString("  " + f.EmitName + ": " + f.FieldType.String() + ";\n")
	}
	for _, pr := range t.Properties {
		if pr.EmitScope == model.Omitted || pr.EmitScope == model.ViewOnly {
			continue
		}
		w.WriteString("  " + pr.EmitName + ": " + pr.PropertyType.String() + ";\n")
	}
	for _, m := range t.Methods {
		if m.EmitScope == model.Omitted || m.EmitScope == model.ViewOnly {
			continue
		}
		w.WriteString("  " + m.EmitName + "(" + paramList(m.Parameters) + "): " + m.ReturnType.String() + ";\n")
	}
	for _, v := range t.ExplicitViews {
		w.WriteString("  " + v.PropertyName + ": " + v.Interface.String() + ";\n")
	}
	w.WriteString("}\n\n")
}

func paramList(params []model.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts = append(parts, p.Name+opt+": "+p.Type.String())
	}
	return strings.Join(parts, ", ")
}

func buildTypeMeta(t model.TypeSymbol) TypeMeta {
	tm := TypeMeta{EmitName: t.EmitName, ClrName: t.ClrFullName}
	for _, m := range t.Methods {
		tm.Members = append(tm.Members, MemberMeta{
			EmitName:   m.EmitName,
			ClrName:    m.ClrName,
			Kind:       "method",
			IsVirtual:  m.IsVirtual,
			IsOverride: m.IsOverride,
			IsStatic:   m.IsStatic,
			HasRefOut:  hasRefOut(m.Parameters),
			Visibility: visibilityName(m.Visibility),
			Signature:  m.StableId.CanonicalSignature,
		})
	}
	for _, pr := range t.Properties {
		tm.Members = append(tm.Members, MemberMeta{
			EmitName:   pr.EmitName,
			ClrName:    pr.ClrName,
			Kind:       "property",
			IsVirtual:  pr.IsVirtual,
			IsOverride: pr.IsOverride,
			IsStatic:   pr.IsStatic,
			Visibility: visibilityName(pr.Visibility),
			Signature:  pr.StableId.CanonicalSignature,
		})
	}
	for _, f := range t.Fields {
		tm.Members = append(tm.Members, MemberMeta{
			EmitName:   f.EmitName,
			ClrName:    f.ClrName,
			Kind:       "field",
			IsStatic:   f.IsStatic,
			Visibility: visibilityName(f.Visibility),
			Signature:  f.StableId.CanonicalSignature,
		})
	}
	return tm
}

func hasRefOut(params []model.Parameter) bool {
	for _, p := range params {
		if p.Kind == model.ParamRef || p.Kind == model.ParamOut {
			return true
		}
	}
	return false
}

func visibilityName(v model.MemberVisibility) string {
	switch v {
	case model.VisInternal:
		return "internal"
	case model.VisPrivate:
		return "private"
	case model.VisProtected:
		return "protected"
	default:
		return "public"
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
