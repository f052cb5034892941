package model

// ParameterKind distinguishes a CLR parameter-passing mode the TST cannot
// express (ref/out) from an ordinary by-value one.
type ParameterKind int

const (
	ParamIn ParameterKind = iota
	ParamRef
	ParamOut
	ParamParams // C#-style "params T[]" / variadic tail parameter
)

type Parameter struct {
	Name     string
	Type     TypeReference
	Kind     ParameterKind
	Optional bool
	Default  string // textual default, if any; empty means none
}

// GenericParam carries a generic parameter's constraints, variance, and
// special-constraint flags (new(), struct, class).
type GenericParam struct {
	Name            string
	Variance        Variance
	Constraints     []TypeReference
	RequiresNew     bool // new() special constraint — unrepresentable in the TST (spec §4.12)
	RequiresStruct  bool
	RequiresClass   bool
}

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// Provenance records how a member entered the graph (spec §3).
type Provenance int

const (
	Original Provenance = iota
	FromInterface
	Synthesized
	BaseOverload
	ExplicitViewProvenance
	IndexerNormalized
	DiamondResolved
)

func (p Provenance) String() string {
	switch p {
	case Original:
		return "Original"
	case FromInterface:
		return "FromInterface"
	case Synthesized:
		return "Synthesized"
	case BaseOverload:
		return "BaseOverload"
	case ExplicitViewProvenance:
		return "ExplicitView"
	case IndexerNormalized:
		return "IndexerNormalized"
	case DiamondResolved:
		return "DiamondResolved"
	default:
		return "Unknown"
	}
}

// EmitScope describes where a member ultimately surfaces (spec §3).
type EmitScope int

const (
	ClassSurface EmitScope = iota
	StaticSurface
	ViewOnly
	Omitted
)

func (e EmitScope) String() string {
	switch e {
	case ClassSurface:
		return "ClassSurface"
	case StaticSurface:
		return "StaticSurface"
	case ViewOnly:
		return "ViewOnly"
	case Omitted:
		return "Omitted"
	default:
		return "Unknown"
	}
}

// Method is a method, operator, or accessor-backing member.
type Method struct {
	StableId   MemberStableId
	ClrName    string
	ReturnType TypeReference
	Parameters []Parameter
	Generics   []GenericParam

	IsStatic   bool
	IsAbstract bool
	IsVirtual  bool
	IsOverride bool
	IsSealed   bool
	IsNew      bool // hides a base member of the same name

	Visibility      MemberVisibility
	Provenance      Provenance
	SourceInterface *TypeReference // non-nil iff Provenance implies an interface origin
	EmitScope       EmitScope
	EmitName        string // set by NameReserve; empty until then
}

type MemberVisibility int

const (
	VisPublic MemberVisibility = iota
	VisInternal
	VisPrivate
	VisProtected
)

// Property is a property or indexer (IndexParameters non-empty => indexer).
type Property struct {
	StableId       MemberStableId
	ClrName        string
	PropertyType   TypeReference
	IndexParameters []Parameter
	HasGetter      bool
	HasSetter      bool

	IsStatic   bool
	IsAbstract bool
	IsVirtual  bool
	IsOverride bool
	IsSealed   bool
	IsNew      bool

	Visibility      MemberVisibility
	Provenance      Provenance
	SourceInterface *TypeReference
	EmitScope       EmitScope
	EmitName        string
}

func (p Property) IsIndexer() bool { return len(p.IndexParameters) > 0 }

type Field struct {
	StableId   MemberStableId
	ClrName    string
	FieldType  TypeReference
	IsStatic   bool
	IsReadonly bool
	Visibility MemberVisibility
	Provenance Provenance
	EmitScope  EmitScope
	EmitName   string
}

type Event struct {
	StableId    MemberStableId
	ClrName     string
	HandlerType TypeReference
	IsStatic    bool
	Visibility  MemberVisibility
	Provenance  Provenance
	SourceInterface *TypeReference
	EmitScope   EmitScope
	EmitName    string
}

type Constructor struct {
	StableId   MemberStableId
	Parameters []Parameter
	Visibility MemberVisibility
	EmitScope  EmitScope
	EmitName   string
}

// ExplicitView groups the members a class/struct cannot satisfy on its
// class surface for one particular interface (spec §4.5 pass 14).
//
// RequestedPropertyName is the candidate computed by the view-planning pass
// ("As_<Simple>" or the generic-arg-qualified form) before it has gone
// through the Naming Authority; PropertyName is empty until the Name
// Reservation stage reserves it onto the class's instance scope like any
// other class-surface property and writes back the final name.
type ExplicitView struct {
	Interface             TypeReference
	InterfaceId           TypeStableId
	RequestedPropertyName string
	PropertyName          string
	Methods               []Method
	Properties            []Property
	Events                []Event
}

// PropertyStableId synthesizes the MemberStableId under which a view's
// As_<Interface> property is reserved: it is owned by the implementing
// type, not the interface, so it is keyed on the type's own identity plus
// the interface it views rather than shared across implementers the way
// an ordinary view member clone is.
func (v ExplicitView) PropertyStableId(owner TypeStableId) MemberStableId {
	return MemberStableId{
		Assembly:             owner.Assembly,
		DeclaringClrFullName: owner.ClrFullName,
		MemberName:           "As_" + v.InterfaceId.ClrFullName,
		CanonicalSignature:   "view-property",
	}
}
