// Package loadboundary implements the Load boundary (spec §6): reads a
// list of filesystem paths and returns a *model.SymbolGraph carrying
// CLR-flavored facts only. Ignores compiler-generated types, sanitizes
// parameter names against reserved words at ingestion, and computes every
// MemberStableId's canonical signature up front.
package loadboundary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// Source is the narrow external-collaborator interface the rest of the
// pipeline depends on, never the concrete manifest format directly — a
// real deployment could swap this for a Roslyn/System.Reflection.Metadata
// reader without the pipeline noticing.
type Source interface {
	Load(paths []string) (*model.SymbolGraph, []*diagnostics.Diagnostic, error)
}

// ManifestSource reads YAML assembly manifests. It's the only Source this
// repo ships, since no library in the retrieval pack reads CLR/PE metadata
// directly; the manifest format stands in for that frontend, grounded on
// internal/ext/config.go's own typed-struct yaml.v3 loading.
type ManifestSource struct{}

func (ManifestSource) Load(paths []string) (*model.SymbolGraph, []*diagnostics.Diagnostic, error) {
	var diags []*diagnostics.Diagnostic
	var namespaces []model.NamespaceSymbol
	var assemblies []string
	byNamespace := make(map[string]int) // name -> index into namespaces

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load boundary: open %q: %w", path, err)
		}
		var mf manifestFile
		if err := yaml.Unmarshal(raw, &mf); err != nil {
			return nil, nil, fmt.Errorf("load boundary: parse %q: %w", path, err)
		}
		assembly := path
		if len(mf.Assemblies) > 0 {
			assembly = mf.Assemblies[0]
		}
		assemblies = append(assemblies, mf.Assemblies...)

		for _, mns := range mf.Namespaces {
			idx, ok := byNamespace[mns.Name]
			if !ok {
				namespaces = append(namespaces, model.NamespaceSymbol{Name: mns.Name})
				idx = len(namespaces) - 1
				byNamespace[mns.Name] = idx
			}
			for _, mt := range mns.Types {
				if isCompilerGenerated(mt.SimpleName) {
					continue
				}
				t, tdiags := convertType(assembly, mt)
				diags = append(diags, tdiags...)
				namespaces[idx].Types = append(namespaces[idx].Types, t)
			}
		}
	}

	return model.NewSymbolGraph(namespaces, assemblies), diags, nil
}

// isCompilerGenerated matches spec §6's filter: a simple name containing
// '<' or '>' (e.g. closure classes, iterator state machines) never
// reaches the graph.
func isCompilerGenerated(simpleName string) bool {
	return strings.ContainsAny(simpleName, "<>")
}

func convertType(assembly string, mt manifestType) (model.TypeSymbol, []*diagnostics.Diagnostic) {
	var diags []*diagnostics.Diagnostic
	kind := parseKind(mt.Kind)

	var base *model.TypeReference
	if mt.BaseType != nil {
		b := toTypeRef(*mt.BaseType)
		base = &b
	}

	ifaces := make([]model.TypeReference, 0, len(mt.Interfaces))
	for _, i := range mt.Interfaces {
		ifaces = append(ifaces, toTypeRef(i))
	}

	generics := make([]model.GenericParam, 0, len(mt.Generics))
	for _, g := range mt.Generics {
		generics = append(generics, toGenericParam(g))
	}

	methods := make([]model.Method, 0, len(mt.Methods))
	for _, mm := range mt.Methods {
		m, d := convertMethod(assembly, mt.ClrFullName, mm)
		diags = append(diags, d...)
		methods = append(methods, m)
	}

	props := make([]model.Property, 0, len(mt.Properties))
	for _, mp := range mt.Properties {
		p, d := convertProperty(assembly, mt.ClrFullName, mp)
		diags = append(diags, d...)
		props = append(props, p)
	}

	fields := make([]model.Field, 0, len(mt.Fields))
	for _, mf := range mt.Fields {
		fields = append(fields, convertField(assembly, mt.ClrFullName, mf))
	}

	events := make([]model.Event, 0, len(mt.Events))
	for _, me := range mt.Events {
		events = append(events, convertEvent(assembly, mt.ClrFullName, me))
	}

	ctors := make([]model.Constructor, 0, len(mt.Ctors))
	for _, mc := range mt.Ctors {
		c, d := convertCtor(assembly, mt.ClrFullName, mc)
		diags = append(diags, d...)
		ctors = append(ctors, c)
	}

	return model.TypeSymbol{
		StableId:           model.TypeStableId{Assembly: assembly, ClrFullName: mt.ClrFullName},
		ClrFullName:        mt.ClrFullName,
		SimpleName:         mt.SimpleName,
		Namespace:          namespaceOf(mt.ClrFullName, mt.SimpleName),
		Kind:               kind,
		Arity:              mt.Arity,
		Generics:           generics,
		BaseType:           base,
		DeclaredInterfaces: ifaces,
		Methods:            methods,
		Properties:         props,
		Fields:             fields,
		Events:             events,
		Constructors:       ctors,
		Flags: model.TypeFlags{
			IsValueType: mt.IsValueType,
			IsAbstract:  mt.IsAbstract,
			IsSealed:    mt.IsSealed,
			IsStatic:    mt.IsStatic,
		},
	}, diags
}

func namespaceOf(clrFullName, simpleName string) string {
	suffix := "." + simpleName
	if strings.HasSuffix(clrFullName, suffix) {
		return strings.TrimSuffix(clrFullName, suffix)
	}
	return ""
}

func parseKind(s string) model.Kind {
	switch s {
	case "Interface":
		return model.Interface
	case "Struct":
		return model.Struct
	case "Enum":
		return model.Enum
	case "Delegate":
		return model.Delegate
	case "StaticNamespace":
		return model.StaticNamespace
	default:
		return model.Class
	}
}

func parseVisibility(s string) model.MemberVisibility {
	switch s {
	case "Internal":
		return model.VisInternal
	case "Private":
		return model.VisPrivate
	case "Protected":
		return model.VisProtected
	default:
		return model.VisPublic
	}
}

func parseVariance(s string) model.Variance {
	switch s {
	case "Covariant":
		return model.Covariant
	case "Contravariant":
		return model.Contravariant
	default:
		return model.Invariant
	}
}

func parseParamKind(s string) model.ParameterKind {
	switch s {
	case "ref":
		return model.ParamRef
	case "out":
		return model.ParamOut
	case "params":
		return model.ParamParams
	default:
		return model.ParamIn
	}
}

func toGenericParam(g manifestGeneric) model.GenericParam {
	constraints := make([]model.TypeReference, 0, len(g.Constraints))
	for _, c := range g.Constraints {
		constraints = append(constraints, toTypeRef(c))
	}
	return model.GenericParam{
		Name:           g.Name,
		Variance:       parseVariance(g.Variance),
		Constraints:    constraints,
		RequiresNew:    g.RequiresNew,
		RequiresStruct: g.RequiresStruct,
		RequiresClass:  g.RequiresClass,
	}
}

func toTypeRef(r manifestTypeRef) model.TypeReference {
	switch r.Kind {
	case "genericparam":
		scope := model.ScopeOfType
		if r.ParamScope == "method" {
			scope = model.ScopeOfMethod
		}
		return model.GenericParameterRef{Name: r.Name, Scope: scope, Position: r.Position}
	case "nested":
		var declaring model.TypeReference = model.PlaceholderRef{Textual: "unresolved-declaring"}
		if r.Declaring != nil {
			declaring = toTypeRef(*r.Declaring)
		}
		return model.NestedRef{Declaring: declaring, NestedName: r.NestedName}
	case "array":
		var elem model.TypeReference = model.PlaceholderRef{Textual: "unresolved-element"}
		if r.Element != nil {
			elem = toTypeRef(*r.Element)
		}
		rank := r.Rank
		if rank < 1 {
			rank = 1
		}
		return model.ArrayRef{Element: elem, Rank: rank}
	case "pointer":
		var pointee model.TypeReference = model.PlaceholderRef{Textual: "unresolved-pointee"}
		if r.Pointee != nil {
			pointee = toTypeRef(*r.Pointee)
		}
		return model.PointerRef{Pointee: pointee}
	case "byref":
		var referenced model.TypeReference = model.PlaceholderRef{Textual: "unresolved-referenced"}
		if r.Referenced != nil {
			referenced = toTypeRef(*r.Referenced)
		}
		return model.ByRefRef{Referenced: referenced}
	default: // "named" or empty
		args := make([]model.TypeReference, 0, len(r.Args))
		for _, a := range r.Args {
			args = append(args, toTypeRef(a))
		}
		return model.NamedRef{
			Assembly:      r.Assembly,
			Namespace:     r.Namespace,
			SimpleName:    r.Name,
			Arity:         r.Arity,
			TypeArguments: args,
		}
	}
}

// sanitizeParam applies identity.SanitizeIdentifier to a parameter's
// requested name at ingestion time, the one place spec §6 requires it.
func sanitizeParam(p manifestParam) (model.Parameter, *diagnostics.Diagnostic) {
	final, wasSanitized := identity.SanitizeIdentifier(p.Name)
	var d *diagnostics.Diagnostic
	if wasSanitized {
		d = diagnostics.NewInfo(diagnostics.CodeRenameDecision,
			diagnostics.Site{Component: "loadboundary.Load", Path: p.Name},
			"parameter name "+p.Name+" sanitized to "+final+" at ingestion")
	}
	return model.Parameter{
		Name:     final,
		Type:     toTypeRef(p.Type),
		Kind:     parseParamKind(p.Kind),
		Optional: p.Optional,
		Default:  p.Default,
	}, d
}

func convertParams(params []manifestParam) ([]model.Parameter, []*diagnostics.Diagnostic) {
	out := make([]model.Parameter, 0, len(params))
	var diags []*diagnostics.Diagnostic
	for _, p := range params {
		conv, d := sanitizeParam(p)
		out = append(out, conv)
		if d != nil {
			diags = append(diags, d)
		}
	}
	return out, diags
}

func convertMethod(assembly, declaringFullName string, mm manifestMethod) (model.Method, []*diagnostics.Diagnostic) {
	params, diags := convertParams(mm.Params)
	generics := make([]model.GenericParam, 0, len(mm.Generics))
	for _, g := range mm.Generics {
		generics = append(generics, toGenericParam(g))
	}
	var ret model.TypeReference = model.NamedRef{SimpleName: "Void"}
	if mm.Return != nil {
		ret = toTypeRef(*mm.Return)
	}
	var src *model.TypeReference
	if mm.SourceInterface != nil {
		s := toTypeRef(*mm.SourceInterface)
		src = &s
	}
	m := model.Method{
		ClrName:         mm.Name,
		ReturnType:      ret,
		Parameters:      params,
		Generics:        generics,
		IsStatic:        mm.IsStatic,
		IsAbstract:      mm.IsAbstract,
		IsVirtual:       mm.IsVirtual,
		IsOverride:      mm.IsOverride,
		IsSealed:        mm.IsSealed,
		IsNew:           mm.IsNew,
		Visibility:      parseVisibility(mm.Visibility),
		Provenance:      model.Original,
		SourceInterface: src,
		EmitScope:       model.ClassSurface,
	}
	if mm.IsStatic {
		m.EmitScope = model.StaticSurface
	}
	m.StableId = model.MemberStableId{
		Assembly:             assembly,
		DeclaringClrFullName: declaringFullName,
		MemberName:           mm.Name,
		CanonicalSignature:   signature.MethodOf(m),
	}
	return m, diags
}

func convertProperty(assembly, declaringFullName string, mp manifestProperty) (model.Property, []*diagnostics.Diagnostic) {
	idxParams, diags := convertParams(mp.IndexParams)
	var src *model.TypeReference
	if mp.SourceInterface != nil {
		s := toTypeRef(*mp.SourceInterface)
		src = &s
	}
	p := model.Property{
		ClrName:         mp.Name,
		PropertyType:    toTypeRef(mp.Type),
		IndexParameters: idxParams,
		HasGetter:       mp.HasGetter,
		HasSetter:       mp.HasSetter,
		IsStatic:        mp.IsStatic,
		IsAbstract:      mp.IsAbstract,
		IsVirtual:       mp.IsVirtual,
		IsOverride:      mp.IsOverride,
		IsSealed:        mp.IsSealed,
		IsNew:           mp.IsNew,
		Visibility:      parseVisibility(mp.Visibility),
		Provenance:      model.Original,
		SourceInterface: src,
		EmitScope:       model.ClassSurface,
	}
	if mp.IsStatic {
		p.EmitScope = model.StaticSurface
	}
	p.StableId = model.MemberStableId{
		Assembly:             assembly,
		DeclaringClrFullName: declaringFullName,
		MemberName:           mp.Name,
		CanonicalSignature:   signature.PropertyOf(p),
	}
	return p, diags
}

func convertField(assembly, declaringFullName string, mf manifestField) model.Field {
	f := model.Field{
		ClrName:    mf.Name,
		FieldType:  toTypeRef(mf.Type),
		IsStatic:   mf.IsStatic,
		IsReadonly: mf.IsReadonly,
		Visibility: parseVisibility(mf.Visibility),
		Provenance: model.Original,
		EmitScope:  model.ClassSurface,
	}
	if mf.IsStatic {
		f.EmitScope = model.StaticSurface
	}
	f.StableId = model.MemberStableId{
		Assembly:             assembly,
		DeclaringClrFullName: declaringFullName,
		MemberName:           mf.Name,
		CanonicalSignature:   signature.FieldOf(f),
	}
	return f
}

func convertEvent(assembly, declaringFullName string, me manifestEvent) model.Event {
	var src *model.TypeReference
	if me.SourceInterface != nil {
		s := toTypeRef(*me.SourceInterface)
		src = &s
	}
	e := model.Event{
		ClrName:         me.Name,
		HandlerType:     toTypeRef(me.HandlerType),
		IsStatic:        me.IsStatic,
		Visibility:      parseVisibility(me.Visibility),
		Provenance:      model.Original,
		SourceInterface: src,
		EmitScope:       model.ClassSurface,
	}
	if me.IsStatic {
		e.EmitScope = model.StaticSurface
	}
	e.StableId = model.MemberStableId{
		Assembly:             assembly,
		DeclaringClrFullName: declaringFullName,
		MemberName:           me.Name,
		CanonicalSignature:   signature.EventOf(e),
	}
	return e
}

func convertCtor(assembly, declaringFullName string, mc manifestCtor) (model.Constructor, []*diagnostics.Diagnostic) {
	params, diags := convertParams(mc.Params)
	c := model.Constructor{
		Parameters: params,
		Visibility: parseVisibility(mc.Visibility),
		EmitScope:  model.ClassSurface,
	}
	c.StableId = model.MemberStableId{
		Assembly:             assembly,
		DeclaringClrFullName: declaringFullName,
		MemberName:           ".ctor",
		CanonicalSignature:   signature.ConstructorOf(c),
	}
	return c, diags
}
