// Package reserve implements the Name Reservation stage (spec §4.6): two
// fixed sub-stages — type names, then member names — run over the
// Emission-Order Planner's ordering so that numeric-suffix allocation is
// deterministic across runs.
package reserve

import (
	"sort"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
	"github.com/tsoniclang/tsbindgen/internal/emitorder"
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/naming"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// Pass runs both sub-stages of Name Reservation in order and writes the
// resulting final names back onto the graph's types and members.
type Pass struct{}

// memberKey identifies one reservation: a MemberStableId is shared across
// every type that clones an interface member into a view (spec §3's
// "clones retain the interface's StableId" invariant), so the StableId
// alone is not unique enough to key a name — the scope it was reserved
// under must be part of the key too, or two types sharing a StableId would
// silently overwrite each other's independently-reserved name.
type memberKey struct {
	scope string
	id    model.MemberStableId
}

func (p *Pass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	typeNames := reserveTypeNames(ctx)
	memberNames := reserveMemberNames(ctx, typeNames)

	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		if name, ok := typeNames[t.StableId]; ok {
			t = t.WithEmitName(name)
		}
		return applyMemberNames(t, memberNames)
	})
	ctx.Stage = "reserve.NameReservation"
	return ctx
}

// reserveTypeNames implements sub-stage 1: for each namespace in lexical
// order, reserve every type's name in emission-order-planner order.
func reserveTypeNames(ctx *pipeline.PipelineContext) map[model.TypeStableId]string {
	out := make(map[model.TypeStableId]string)
	for _, nsName := range emitorder.OrderNamespaces(ctx.Graph) {
		var types []model.TypeSymbol
		for _, ns := range ctx.Graph.Namespaces {
			if ns.Name == nsName {
				types = append(types, ns.Types...)
			}
		}
		ordered := emitorder.OrderTypes(types, func(t model.TypeSymbol) string { return t.SimpleName })
		scope := model.NamespaceScope(nsName, model.Public)
		for _, t := range ordered {
			name, err := ctx.Renamer.ReserveType(t.StableId, t.SimpleName, scope, "reserve.TypeNames")
			if err != nil {
				ctx.Diagnostics.Add(diagnostics.NewError(diagnostics.CodeNameConflictUnresolved,
					site("reserve.TypeNames", t.ClrFullName), err.Error()))
				continue
			}
			out[t.StableId] = name
		}
	}
	return out
}

// reserveMemberNames implements sub-stage 2: for each type (namespace
// order, then type order), reserve class-surface members (instance, then
// static) before view members.
func reserveMemberNames(ctx *pipeline.PipelineContext, typeNames map[model.TypeStableId]string) map[memberKey]string {
	out := make(map[memberKey]string)
	for _, nsName := range emitorder.OrderNamespaces(ctx.Graph) {
		var types []model.TypeSymbol
		for _, ns := range ctx.Graph.Namespaces {
			if ns.Name == nsName {
				types = append(types, ns.Types...)
			}
		}
		ordered := emitorder.OrderTypes(types, func(t model.TypeSymbol) string { return t.SimpleName })
		for _, t := range ordered {
			reserveClassSurfaceMembers(ctx, t, model.Instance, out)
			reserveClassSurfaceMembers(ctx, t, model.Static, out)
			reserveViewPropertyNames(ctx, t, out)
			reserveViewMembers(ctx, t, out)
		}
	}
	return out
}

func reserveClassSurfaceMembers(ctx *pipeline.PipelineContext, t model.TypeSymbol, static model.StaticNess, out map[memberKey]string) {
	scope := model.TypeScope(t.ClrFullName, static)
	wantStatic := static == model.Static

	var ctors []model.Constructor
	var fields []model.Field
	var props []model.Property
	var events []model.Event
	var methods []model.Method
	for _, c := range t.Constructors {
		ctors = append(ctors, c)
	}
	for _, f := range t.Fields {
		if isClassSurface(f.EmitScope) && f.IsStatic == wantStatic {
			fields = append(fields, f)
		}
	}
	for _, pr := range t.Properties {
		if isClassSurface(pr.EmitScope) && pr.IsStatic == wantStatic {
			props = append(props, pr)
		}
	}
	for _, ev := range t.Events {
		if isClassSurface(ev.EmitScope) && ev.IsStatic == wantStatic {
			events = append(events, ev)
		}
	}
	for _, m := range t.Methods {
		if isClassSurface(m.EmitScope) && m.IsStatic == wantStatic {
			methods = append(methods, m)
		}
	}

	if !wantStatic {
		for _, c := range ctors {
			name, err := ctx.Renamer.ReserveMember(c.StableId, "ctor", scope, naming.KindConstructor, "", "reserve.MemberNames")
			if err == nil {
				out[memberKey{scope.Key(), c.StableId}] = name
			}
		}
	}
	for _, f := range sortedFields(fields) {
		name, err := ctx.Renamer.ReserveMember(f.StableId, f.ClrName, scope, naming.KindField, "", "reserve.MemberNames")
		if err == nil {
			out[memberKey{scope.Key(), f.StableId}] = name
		}
	}
	for _, pr := range sortedProps(props) {
		name, err := ctx.Renamer.ReserveMember(pr.StableId, pr.ClrName, scope, naming.KindProperty, "", "reserve.MemberNames")
		if err == nil {
			out[memberKey{scope.Key(), pr.StableId}] = name
		}
	}
	for _, ev := range sortedEvents(events) {
		name, err := ctx.Renamer.ReserveMember(ev.StableId, ev.ClrName, scope, naming.KindEvent, "", "reserve.MemberNames")
		if err == nil {
			out[memberKey{scope.Key(), ev.StableId}] = name
		}
	}
	for _, m := range sortedMethods(methods) {
		name, err := ctx.Renamer.ReserveMember(m.StableId, m.ClrName, scope, naming.KindMethod, "", "reserve.MemberNames")
		if err == nil {
			out[memberKey{scope.Key(), m.StableId}] = name
		}
	}
}

// reserveViewPropertyNames reserves each ExplicitView's As_<Interface>
// property through the Renamer in the type's instance scope, the same
// scope its real properties/methods/fields occupy, so a type that already
// has (or renames into) a member literally named As_IFoo forces the view
// property to take a numeric suffix instead of silently colliding.
func reserveViewPropertyNames(ctx *pipeline.PipelineContext, t model.TypeSymbol, out map[memberKey]string) {
	scope := model.TypeScope(t.ClrFullName, model.Instance)
	views := append([]model.ExplicitView(nil), t.ExplicitViews...)
	sort.Slice(views, func(i, j int) bool { return views[i].InterfaceId.ClrFullName < views[j].InterfaceId.ClrFullName })
	for _, v := range views {
		id := v.PropertyStableId(t.StableId)
		name, err := ctx.Renamer.ReserveMember(id, v.RequestedPropertyName, scope, naming.KindProperty, "", "reserve.ViewPropertyNames")
		if err == nil {
			out[memberKey{scope.Key(), id}] = name
		}
	}
}

func reserveViewMembers(ctx *pipeline.PipelineContext, t model.TypeSymbol, out map[memberKey]string) {
	for _, v := range t.ExplicitViews {
		for _, m := range sortedMethods(append([]model.Method(nil), v.Methods...)) {
			reserveViewMember(ctx, t, v, m.StableId, m.ClrName, m.IsStatic, naming.KindMethod, out)
		}
		for _, pr := range sortedProps(append([]model.Property(nil), v.Properties...)) {
			reserveViewMember(ctx, t, v, pr.StableId, pr.ClrName, pr.IsStatic, naming.KindProperty, out)
		}
		for _, ev := range sortedEvents(append([]model.Event(nil), v.Events...)) {
			reserveViewMember(ctx, t, v, ev.StableId, ev.ClrName, ev.IsStatic, naming.KindEvent, out)
		}
	}
}

func reserveViewMember(ctx *pipeline.PipelineContext, t model.TypeSymbol, v model.ExplicitView, id model.MemberStableId, clrName string, isStatic bool, kind naming.MemberKind, out map[memberKey]string) {
	static := model.Instance
	if isStatic {
		static = model.Static
	}
	classScope := model.TypeScope(t.ClrFullName, static)
	viewScope := model.ViewScope(t.StableId, v.InterfaceId, static)

	peeked := ctx.Renamer.PeekFinalMember(classScope, clrName, kind)
	requested := clrName
	if ctx.Renamer.IsTaken(classScope, peeked, kind) {
		requested = clrName + "$view"
	}
	name, err := ctx.Renamer.ReserveMember(id, requested, viewScope, kind, "", "reserve.ViewMembers")
	if err == nil {
		out[memberKey{viewScope.Key(), id}] = name
	}
}

func isClassSurface(scope model.EmitScope) bool {
	return scope == model.ClassSurface || scope == model.StaticSurface
}

// applyMemberNames looks up each member's name under the same scope it was
// reserved in, so a StableId shared between a type's own class-surface
// member and another type's view clone of it (or between two different
// types' view clones of the same interface member) resolves to each one's
// own independently-reserved name rather than whichever reservation
// happened to run last.
func applyMemberNames(t model.TypeSymbol, names map[memberKey]string) model.TypeSymbol {
	classScope := func(isStatic bool) model.Scope {
		static := model.Instance
		if isStatic {
			static = model.Static
		}
		return model.TypeScope(t.ClrFullName, static)
	}

	methods := append([]model.Method(nil), t.Methods...)
	for i, m := range methods {
		if n, ok := names[memberKey{classScope(m.IsStatic).Key(), m.StableId}]; ok {
			methods[i].EmitName = n
		}
	}
	props := append([]model.Property(nil), t.Properties...)
	for i, pr := range props {
		if n, ok := names[memberKey{classScope(pr.IsStatic).Key(), pr.StableId}]; ok {
			props[i].EmitName = n
		}
	}
	fields := append([]model.Field(nil), t.Fields...)
	for i, f := range fields {
		if n, ok := names[memberKey{classScope(f.IsStatic).Key(), f.StableId}]; ok {
			fields[i].EmitName = n
		}
	}
	events := append([]model.Event(nil), t.Events...)
	for i, ev := range events {
		if n, ok := names[memberKey{classScope(ev.IsStatic).Key(), ev.StableId}]; ok {
			events[i].EmitName = n
		}
	}
	ctors := append([]model.Constructor(nil), t.Constructors...)
	for i, c := range ctors {
		if n, ok := names[memberKey{classScope(false).Key(), c.StableId}]; ok {
			ctors[i].EmitName = n
		}
	}
	instanceScope := model.TypeScope(t.ClrFullName, model.Instance)
	views := append([]model.ExplicitView(nil), t.ExplicitViews...)
	for vi, v := range views {
		if n, ok := names[memberKey{instanceScope.Key(), v.PropertyStableId(t.StableId)}]; ok {
			views[vi].PropertyName = n
		}
		viewScope := func(isStatic bool) model.Scope {
			static := model.Instance
			if isStatic {
				static = model.Static
			}
			return model.ViewScope(t.StableId, v.InterfaceId, static)
		}

		vMethods := append([]model.Method(nil), v.Methods...)
		for i, m := range vMethods {
			if n, ok := names[memberKey{viewScope(m.IsStatic).Key(), m.StableId}]; ok {
				vMethods[i].EmitName = n
			}
		}
		vProps := append([]model.Property(nil), v.Properties...)
		for i, pr := range vProps {
			if n, ok := names[memberKey{viewScope(pr.IsStatic).Key(), pr.StableId}]; ok {
				vProps[i].EmitName = n
			}
		}
		vEvents := append([]model.Event(nil), v.Events...)
		for i, ev := range vEvents {
			if n, ok := names[memberKey{viewScope(ev.IsStatic).Key(), ev.StableId}]; ok {
				vEvents[i].EmitName = n
			}
		}
		views[vi].Methods = vMethods
		views[vi].Properties = vProps
		views[vi].Events = vEvents
	}

	return t.WithMethods(methods).WithProperties(props).WithFields(fields).WithEvents(events).WithConstructors(ctors).WithExplicitViews(views)
}

func site(component, path string) diagnostics.Site {
	return diagnostics.Site{Component: component, Path: path}
}
