// Package signature produces the canonical textual forms used for member
// dedup, overload-group bucketing, and matching interface-required members
// against a type's existing surface (spec §4.4). There is exactly one
// canonical form per member kind; it must be stable across runs (no
// hash-order dependence) and total over any TypeReference, including
// nested types, arrays, byrefs, and pointers.
package signature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

func paramKindLetter(k model.ParameterKind) string {
	switch k {
	case model.ParamRef:
		return "ref"
	case model.ParamOut:
		return "out"
	case model.ParamParams:
		return "params"
	default:
		return "in"
	}
}

func paramCanon(p model.Parameter) string {
	return fmt.Sprintf("%s:%s:%t:%t", paramKindLetter(p.Kind), p.Type.String(), p.Optional, p.Kind == model.ParamParams)
}

// Method renders the canonical signature of a method:
// <Name>|arity=<N>|(<p0kind>:<p0type>:<opt?>:<params?>,…)|-><ReturnType>|static=<bool>
func Method(name string, genericArity int, params []model.Parameter, returnType model.TypeReference, isStatic bool) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = paramCanon(p)
	}
	ret := "void"
	if returnType != nil {
		ret = returnType.String()
	}
	return fmt.Sprintf("%s|arity=%d|(%s)|->%s|static=%t",
		name, genericArity, strings.Join(parts, ","), ret, isStatic)
}

func MethodOf(m model.Method) string {
	return Method(m.ClrName, len(m.Generics), m.Parameters, m.ReturnType, m.IsStatic)
}

// Property renders the canonical signature of a property or indexer:
// <Name>|(<idx0type>,…)|-><PropType>|static=<bool>|accessor=<get|set|getset>
func Property(name string, indexParams []model.Parameter, propertyType model.TypeReference, isStatic, hasGetter, hasSetter bool) string {
	idx := make([]string, len(indexParams))
	for i, p := range indexParams {
		idx[i] = p.Type.String()
	}
	accessor := accessorKind(hasGetter, hasSetter)
	pt := "void"
	if propertyType != nil {
		pt = propertyType.String()
	}
	return fmt.Sprintf("%s|(%s)|->%s|static=%t|accessor=%s",
		name, strings.Join(idx, ","), pt, isStatic, accessor)
}

func PropertyOf(p model.Property) string {
	return Property(p.ClrName, p.IndexParameters, p.PropertyType, p.IsStatic, p.HasGetter, p.HasSetter)
}

func accessorKind(hasGetter, hasSetter bool) string {
	switch {
	case hasGetter && hasSetter:
		return "getset"
	case hasGetter:
		return "get"
	case hasSetter:
		return "set"
	default:
		return "none"
	}
}

// Event renders the canonical signature of an event.
func Event(name string, handlerType model.TypeReference, isStatic bool) string {
	ht := "void"
	if handlerType != nil {
		ht = handlerType.String()
	}
	return fmt.Sprintf("%s|->%s|static=%t", name, ht, isStatic)
}

func EventOf(e model.Event) string {
	return Event(e.ClrName, e.HandlerType, e.IsStatic)
}

// Field renders the canonical signature of a field.
func Field(name string, fieldType model.TypeReference, isStatic bool) string {
	ft := "void"
	if fieldType != nil {
		ft = fieldType.String()
	}
	return fmt.Sprintf("%s|->%s|static=%t", name, ft, isStatic)
}

func FieldOf(f model.Field) string {
	return Field(f.ClrName, f.FieldType, f.IsStatic)
}

// Constructor renders the canonical signature of a constructor.
func Constructor(params []model.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = paramCanon(p)
	}
	return fmt.Sprintf(".ctor|(%s)", strings.Join(parts, ","))
}

func ConstructorOf(c model.Constructor) string {
	return Constructor(c.Parameters)
}

// SignatureExcludingReturn renders a method's canonical signature without
// its return type — the bucketing key shape-pass 13 (return-type overload
// resolution) groups by, plus accessor kind for indexer-derived pairs
// (spec §4.5 pass 13).
func SignatureExcludingReturn(name string, genericArity int, params []model.Parameter, isStatic bool, accessor string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = paramCanon(p)
	}
	return fmt.Sprintf("%s|arity=%d|(%s)|static=%t|accessor=%s",
		name, genericArity, strings.Join(parts, ","), isStatic, accessor)
}

// ErasureKey renders the coarser key the Overload Unifier uses to detect
// overloads the TST cannot distinguish (spec §4.7):
// <final_name>|<generic_arity>|<param_count>
func ErasureKey(finalName string, genericArity, paramCount int) string {
	return finalName + "|" + strconv.Itoa(genericArity) + "|" + strconv.Itoa(paramCount)
}
