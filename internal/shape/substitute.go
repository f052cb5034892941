package shape

import "github.com/tsoniclang/tsbindgen/internal/model"

// substitutionFor builds the generic-parameter substitution a constructed
// interface reference implies: iface's own type-parameter names mapped to
// the reference's type arguments, positionally. Returns nil if ref isn't a
// constructed generic (arity 0, or argument count mismatch).
func substitutionFor(iface model.TypeSymbol, ref model.TypeReference) model.Substitution {
	named, ok := ref.(model.NamedRef)
	if !ok || len(named.TypeArguments) == 0 || len(named.TypeArguments) != len(iface.Generics) {
		return nil
	}
	subst := make(model.Substitution, len(iface.Generics))
	for i, gp := range iface.Generics {
		subst[gp.Name] = named.TypeArguments[i]
	}
	return subst
}

func substituteParams(params []model.Parameter, subst model.Substitution) []model.Parameter {
	if subst == nil {
		return params
	}
	out := make([]model.Parameter, len(params))
	for i, p := range params {
		p.Type = p.Type.Substitute(subst)
		out[i] = p
	}
	return out
}

func substituteMethod(m model.Method, subst model.Substitution) model.Method {
	if subst == nil {
		return m
	}
	m.Parameters = substituteParams(m.Parameters, subst)
	if m.ReturnType != nil {
		m.ReturnType = m.ReturnType.Substitute(subst)
	}
	return m
}

func substituteProperty(p model.Property, subst model.Substitution) model.Property {
	if subst == nil {
		return p
	}
	p.IndexParameters = substituteParams(p.IndexParameters, subst)
	if p.PropertyType != nil {
		p.PropertyType = p.PropertyType.Substitute(subst)
	}
	return p
}

func substituteEvent(e model.Event, subst model.Substitution) model.Event {
	if subst == nil {
		return e
	}
	if e.HandlerType != nil {
		e.HandlerType = e.HandlerType.Substitute(subst)
	}
	return e
}
