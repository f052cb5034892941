package model

// Kind is the CLR-flavored shape a TypeSymbol started life as. Shape passes
// narrow how each kind is allowed to participate in conformance/inlining.
type Kind int

const (
	Class Kind = iota
	Interface
	Struct
	Enum
	Delegate
	StaticNamespace
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "Class"
	case Interface:
		return "Interface"
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	case Delegate:
		return "Delegate"
	case StaticNamespace:
		return "StaticNamespace"
	default:
		return "Unknown"
	}
}

// EmissionTier orders type kinds for the Emission-Order Planner (spec
// §4.11): Enum < Delegate < Interface < Struct < Class < StaticNamespace.
func (k Kind) EmissionTier() int {
	switch k {
	case Enum:
		return 0
	case Delegate:
		return 1
	case Interface:
		return 2
	case Struct:
		return 3
	case Class:
		return 4
	case StaticNamespace:
		return 5
	default:
		return 99
	}
}

type TypeFlags struct {
	IsValueType bool
	IsAbstract  bool
	IsSealed    bool
	IsStatic    bool
}

// TypeSymbol is an immutable type value. Passes that want to change one
// construct a new TypeSymbol (spec §3, §9) rather than mutating fields in
// place; callers should treat every field as read-only after construction.
type TypeSymbol struct {
	StableId TypeStableId

	ClrFullName string
	SimpleName  string
	Namespace   string
	Kind        Kind
	Arity       int
	Generics    []GenericParam

	BaseType           *TypeReference
	DeclaredInterfaces []TypeReference

	Methods      []Method
	Properties   []Property
	Fields       []Field
	Events       []Event
	Constructors []Constructor
	NestedTypes  []TypeSymbol

	ExplicitViews []ExplicitView

	Flags TypeFlags

	// EmitName is set by NameReserve (spec §4.6); empty beforehand.
	EmitName string
}

// WithMethods returns a shallow copy of t with Methods replaced — the
// idiom every Shape pass uses to "mutate" a type (spec §9 deep immutability).
func (t TypeSymbol) WithMethods(methods []Method) TypeSymbol {
	t.Methods = methods
	return t
}

func (t TypeSymbol) WithProperties(props []Property) TypeSymbol {
	t.Properties = props
	return t
}

func (t TypeSymbol) WithExplicitViews(views []ExplicitView) TypeSymbol {
	t.ExplicitViews = views
	return t
}

func (t TypeSymbol) WithEmitName(name string) TypeSymbol {
	t.EmitName = name
	return t
}

func (t TypeSymbol) WithFields(fields []Field) TypeSymbol {
	t.Fields = fields
	return t
}

func (t TypeSymbol) WithEvents(events []Event) TypeSymbol {
	t.Events = events
	return t
}

func (t TypeSymbol) WithConstructors(ctors []Constructor) TypeSymbol {
	t.Constructors = ctors
	return t
}

func (t TypeSymbol) WithDeclaredInterfaces(ifaces []TypeReference) TypeSymbol {
	t.DeclaredInterfaces = ifaces
	return t
}

func (t TypeSymbol) WithGenerics(generics []GenericParam) TypeSymbol {
	t.Generics = generics
	return t
}

// IsGeneric reports whether the type has any of its own generic parameters.
func (t TypeSymbol) IsGeneric() bool {
	return t.Arity > 0
}
