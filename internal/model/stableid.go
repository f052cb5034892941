// Package model is the immutable symbol-graph data model shared by every
// pipeline stage (spec §3). Entities are value objects; a pass that wants
// to change one produces a new graph rather than mutating the old one
// (spec §5, §9 "deep immutability"). All cross-references between
// entities go through a StableId, never a pointer into the tree, so the
// graph stays relocatable and serialization-friendly.
package model

import "fmt"

// TypeStableId identifies a type across every transformation the pipeline
// applies to it. Two TypeStableIds are equal iff assembly and CLR full name
// match exactly; nothing else about a type (kind, members, flags) is part
// of its identity.
type TypeStableId struct {
	Assembly     string
	ClrFullName  string // e.g. "System.Collections.Generic.List`1"
}

func (id TypeStableId) String() string {
	return fmt.Sprintf("%s:%s", id.Assembly, id.ClrFullName)
}

func (id TypeStableId) IsZero() bool {
	return id.Assembly == "" && id.ClrFullName == ""
}

// MemberStableId identifies a member. Equality excludes any backing
// metadata token — two members loaded from different builds of the same
// assembly, with the same declaring type / name / canonical signature,
// are the same member.
//
// Invariant (spec §3): a synthesized clone of an interface member into an
// implementing type KEEPS the interface's StableId, so the class-surface
// instance and any view clone of it are disjoint identities sharing the
// interface's declaring-type name. A class's own member keeps the class's
// own StableId.
type MemberStableId struct {
	Assembly            string
	DeclaringClrFullName string
	MemberName          string
	CanonicalSignature  string
}

func (id MemberStableId) String() string {
	return fmt.Sprintf("%s:%s.%s[%s]", id.Assembly, id.DeclaringClrFullName, id.MemberName, id.CanonicalSignature)
}

func (id MemberStableId) IsZero() bool {
	return id.Assembly == "" && id.DeclaringClrFullName == "" && id.MemberName == ""
}
