package shape

import (
	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/pipeline"
)

// MemberDeduplicationPass keeps the first occurrence of each StableId
// within a member family, dropping any exact duplicate a prior pass might
// have introduced (e.g. a base-overload addition re-adding a signature
// already present via interface inlining) (spec §4.5 pass 15).
type MemberDeduplicationPass struct{}

func (p *MemberDeduplicationPass) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Graph = ctx.Graph.MapTypes(func(_ model.NamespaceSymbol, t model.TypeSymbol) model.TypeSymbol {
		methods := make([]model.Method, 0, len(t.Methods))
		seenMethods := make(map[model.MemberStableId]bool)
		for _, m := range t.Methods {
			if seenMethods[m.StableId] {
				continue
			}
			seenMethods[m.StableId] = true
			methods = append(methods, m)
		}

		props := make([]model.Property, 0, len(t.Properties))
		seenProps := make(map[model.MemberStableId]bool)
		for _, pr := range t.Properties {
			if seenProps[pr.StableId] {
				continue
			}
			seenProps[pr.StableId] = true
			props = append(props, pr)
		}

		events := make([]model.Event, 0, len(t.Events))
		seenEvents := make(map[model.MemberStableId]bool)
		for _, ev := range t.Events {
			if seenEvents[ev.StableId] {
				continue
			}
			seenEvents[ev.StableId] = true
			events = append(events, ev)
		}

		fields := make([]model.Field, 0, len(t.Fields))
		seenFields := make(map[model.MemberStableId]bool)
		for _, f := range t.Fields {
			if seenFields[f.StableId] {
				continue
			}
			seenFields[f.StableId] = true
			fields = append(fields, f)
		}

		ctors := make([]model.Constructor, 0, len(t.Constructors))
		seenCtors := make(map[model.MemberStableId]bool)
		for _, c := range t.Constructors {
			if seenCtors[c.StableId] {
				continue
			}
			seenCtors[c.StableId] = true
			ctors = append(ctors, c)
		}

		return t.WithMethods(methods).WithProperties(props).WithEvents(events).WithFields(fields).WithConstructors(ctors)
	})
	ctx.Stage = "shape.MemberDeduplication"
	return ctx
}
