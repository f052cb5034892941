package model

import (
	"fmt"
	"strings"
)

// TypeReference is the closed sum type used everywhere a member, field,
// base-type slot, or generic argument needs to point at a type (spec §3).
// Cycles only ever appear through the external type-index (resolved by
// StableId), never through this sum type itself (spec §9).
type TypeReference interface {
	isTypeReference()
	String() string
	// Substitute replaces every GenericParameter reference found in this
	// reference (recursively) according to subst, keyed by parameter name
	// within the given scope. Used by interface inlining (shape pass 3)
	// and constraint closure (shape pass 12).
	Substitute(subst Substitution) TypeReference
}

// Substitution maps a (scope, position) generic parameter to a concrete
// TypeReference. Keyed by name since within one substitution application
// parameter names are locally unique.
type Substitution map[string]TypeReference

// GenericParamScope distinguishes a method's own type parameters from its
// declaring type's.
type GenericParamScope int

const (
	ScopeOfType GenericParamScope = iota
	ScopeOfMethod
)

func (s GenericParamScope) String() string {
	if s == ScopeOfMethod {
		return "method"
	}
	return "type"
}

// NamedRef is a reference to a named (possibly generic) type: either bare
// (Named{..., Arity: 0}) or a constructed generic (len(TypeArguments) == Arity).
type NamedRef struct {
	Assembly       string
	Namespace      string
	SimpleName     string
	Arity          int
	TypeArguments  []TypeReference
}

func (NamedRef) isTypeReference() {}

func (r NamedRef) String() string {
	if len(r.TypeArguments) == 0 {
		return qualifiedClrKey(r.Namespace, r.SimpleName, r.Arity)
	}
	args := make([]string, len(r.TypeArguments))
	for i, a := range r.TypeArguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", qualifiedClrKey(r.Namespace, r.SimpleName, r.Arity), strings.Join(args, ","))
}

func (r NamedRef) Substitute(subst Substitution) TypeReference {
	if len(r.TypeArguments) == 0 {
		return r
	}
	newArgs := make([]TypeReference, len(r.TypeArguments))
	for i, a := range r.TypeArguments {
		newArgs[i] = a.Substitute(subst)
	}
	r.TypeArguments = newArgs
	return r
}

// qualifiedClrKey renders the invariant-6 "Namespace.Name" or
// "Namespace.Name`Arity" open-generic lookup key — never an
// assembly-qualified or constructed form.
func qualifiedClrKey(namespace, simpleName string, arity int) string {
	full := simpleName
	if namespace != "" {
		full = namespace + "." + simpleName
	}
	if arity > 0 {
		full = fmt.Sprintf("%s`%d", full, arity)
	}
	return full
}

// NestedRef is a reference to a type nested inside another.
type NestedRef struct {
	Declaring  TypeReference
	NestedName string
}

func (NestedRef) isTypeReference() {}

func (r NestedRef) String() string {
	return r.Declaring.String() + "+" + r.NestedName
}

func (r NestedRef) Substitute(subst Substitution) TypeReference {
	r.Declaring = r.Declaring.Substitute(subst)
	return r
}

// GenericParameterRef is a reference to a generic parameter by position
// within its declaring type or method.
type GenericParameterRef struct {
	Name     string
	Scope    GenericParamScope
	Position int
}

func (GenericParameterRef) isTypeReference() {}

func (r GenericParameterRef) String() string { return r.Name }

func (r GenericParameterRef) Substitute(subst Substitution) TypeReference {
	if repl, ok := subst[r.Name]; ok {
		return repl
	}
	return r
}

// ArrayRef is a reference to an array of some element type. Rank is
// preserved on the reference but erased by TST erasure (spec §4.13).
type ArrayRef struct {
	Element TypeReference
	Rank    int
}

func (ArrayRef) isTypeReference() {}

func (r ArrayRef) String() string {
	rank := r.Rank
	if rank < 1 {
		rank = 1
	}
	return r.Element.String() + strings.Repeat("[]", rank)
}

func (r ArrayRef) Substitute(subst Substitution) TypeReference {
	r.Element = r.Element.Substitute(subst)
	return r
}

// PointerRef is a reference to a pointer to some pointee type. The TST has
// no pointer concept; erasure collapses this to the pointee (spec §4.13).
type PointerRef struct {
	Pointee TypeReference
}

func (PointerRef) isTypeReference() {}
func (r PointerRef) String() string { return r.Pointee.String() + "*" }
func (r PointerRef) Substitute(subst Substitution) TypeReference {
	r.Pointee = r.Pointee.Substitute(subst)
	return r
}

// ByRefRef is a reference to a by-ref parameter/return slot. TST has no
// ref/out; erasure collapses this to the referenced type (spec §4.13).
type ByRefRef struct {
	Referenced TypeReference
}

func (ByRefRef) isTypeReference() {}
func (r ByRefRef) String() string { return "ref " + r.Referenced.String() }
func (r ByRefRef) Substitute(subst Substitution) TypeReference {
	r.Referenced = r.Referenced.Substitute(subst)
	return r
}

// PlaceholderRef stands in for a reference the Load boundary could not
// resolve at ingestion time (e.g. an unsupported CLR construct). It always
// fails Gate invariant 7 if it survives to an emitted position.
type PlaceholderRef struct {
	Textual string
}

func (PlaceholderRef) isTypeReference() {}
func (r PlaceholderRef) String() string { return "?" + r.Textual }
func (r PlaceholderRef) Substitute(Substitution) TypeReference { return r }
