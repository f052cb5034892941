package shape

import (
	"regexp"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// ViewPlanningPass collects every ViewOnly member with a non-null
// source interface, groups the members by the interface's StableId, and
// merges each group into an ExplicitView (spec §4.5 pass 14). It requests
// As_<SimpleName> as the view's property name for a non-generic interface, or
// As_<SimpleName>_of_<argName>{_and_<argName>}* for a generic one, where
// each argName is a type parameter's own name (open arguments) or the
// argument's arity-stripped simple name (closed arguments); the Name
// Reservation stage reserves that request through the Renamer and decides
// the final name actually emitted.
type ViewPlanningPass struct{}

func (p *ViewPlanningPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if t.Kind != model.Class && t.Kind != model.Struct {
			return t
		}

		type group struct {
			ifaceRef model.TypeReference
			ifaceId  model.TypeStableId
			methods  []model.Method
			props    []model.Property
			events   []model.Event
		}
		groups := make(map[model.TypeStableId]*group)
		var order []model.TypeStableId

		addGroup := func(ref *model.TypeReference) *group {
			if ref == nil {
				return nil
			}
			named, ok := (*ref).(model.NamedRef)
			if !ok {
				return nil
			}
			id := identity.StableIdForNamed(named.Assembly, named)
			g, found := groups[id]
			if !found {
				g = &group{ifaceRef: *ref, ifaceId: id}
				groups[id] = g
				order = append(order, id)
			}
			return g
		}

		for _, m := range t.Methods {
			if m.EmitScope == model.ViewOnly && m.SourceInterface != nil {
				if g := addGroup(m.SourceInterface); g != nil {
					g.methods = append(g.methods, m)
				}
			}
		}
		for _, pr := range t.Properties {
			if pr.EmitScope == model.ViewOnly && pr.SourceInterface != nil {
				if g := addGroup(pr.SourceInterface); g != nil {
					g.props = append(g.props, pr)
				}
			}
		}
		for _, ev := range t.Events {
			if ev.EmitScope == model.ViewOnly && ev.SourceInterface != nil {
				if g := addGroup(ev.SourceInterface); g != nil {
					g.events = append(g.events, ev)
				}
			}
		}

		existing := make(map[model.TypeStableId]int)
		views := append([]model.ExplicitView(nil), t.ExplicitViews...)
		for i, v := range views {
			existing[v.InterfaceId] = i
		}

		for _, id := range order {
			g := groups[id]
			if i, found := existing[id]; found {
				views[i].Methods = mergeMethods(views[i].Methods, g.methods)
				views[i].Properties = mergeProperties(views[i].Properties, g.props)
				views[i].Events = mergeEvents(views[i].Events, g.events)
				continue
			}
			views = append(views, model.ExplicitView{
				Interface:             g.ifaceRef,
				InterfaceId:           g.ifaceId,
				RequestedPropertyName: viewPropertyName(g.ifaceRef),
				Methods:               g.methods,
				Properties:            g.props,
				Events:                g.events,
			})
		}
		return t.WithExplicitViews(views)
	})
	ctx.Stage = "shape.ViewPlanning"
	return ctx
}

func mergeMethods(a, b []model.Method) []model.Method {
	seen := stableIdSet(a, func(m model.Method) model.MemberStableId { return m.StableId })
	for _, m := range b {
		if !seen[m.StableId] {
			a = append(a, m)
			seen[m.StableId] = true
		}
	}
	return a
}

func mergeProperties(a, b []model.Property) []model.Property {
	seen := stableIdSet(a, func(p model.Property) model.MemberStableId { return p.StableId })
	for _, p := range b {
		if !seen[p.StableId] {
			a = append(a, p)
			seen[p.StableId] = true
		}
	}
	return a
}

func mergeEvents(a, b []model.Event) []model.Event {
	seen := stableIdSet(a, func(e model.Event) model.MemberStableId { return e.StableId })
	for _, e := range b {
		if !seen[e.StableId] {
			a = append(a, e)
			seen[e.StableId] = true
		}
	}
	return a
}

var arityStrip = regexp.MustCompile(`_\d+$`)

func viewPropertyName(ref model.TypeReference) string {
	named, ok := ref.(model.NamedRef)
	if !ok {
		return "As_" + sanitizeViewSegment(ref.String())
	}
	if named.Arity == 0 || len(named.TypeArguments) == 0 {
		return "As_" + named.SimpleName
	}
	argNames := make([]string, len(named.TypeArguments))
	for i, a := range named.TypeArguments {
		argNames[i] = viewArgName(a)
	}
	return "As_" + named.SimpleName + "_of_" + strings.Join(argNames, "_and_")
}

func viewArgName(ref model.TypeReference) string {
	switch t := ref.(type) {
	case model.GenericParameterRef:
		return t.Name
	case model.NamedRef:
		return arityStrip.ReplaceAllString(t.SimpleName, "")
	default:
		return sanitizeViewSegment(ref.String())
	}
}

func sanitizeViewSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
