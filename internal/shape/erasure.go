package shape

import "github.com/tsoniclang/tsbindgen/internal/model"

// ErasedShape is the compact shape TST Erasure & Assignability (spec §4.13)
// reduces a TypeReference to. Used by pass 2 (structural conformance) and
// pass 12 (constraint heads); the Gate does not call it.
type ErasedShape struct {
	kind string // "named" | "generic_application" | "type_parameter" | "array" | "unknown"
	name string
	args []ErasedShape
	elem *ErasedShape
}

// Erase maps a TypeReference to its ErasedShape (spec §4.13): named types
// keep their full name or become a GenericApplication; generic parameters
// erase to a bare TypeParameter; arrays erase to a rank-erased Array of
// their erased element; pointers and byrefs erase through to their referent; anything
// else is Unknown(textual) — a deliberate safety valve that assigns both
// directions.
func Erase(ref model.TypeReference) ErasedShape {
	switch t := ref.(type) {
	case model.NamedRef:
		if len(t.TypeArguments) == 0 {
			return ErasedShape{kind: "named", name: t.String()}
		}
		args := make([]ErasedShape, len(t.TypeArguments))
		for i, a := range t.TypeArguments {
			args[i] = Erase(a)
		}
		base := model.NamedRef{Assembly: t.Assembly, Namespace: t.Namespace, SimpleName: t.SimpleName, Arity: t.Arity}
		return ErasedShape{kind: "generic_application", name: base.String(), args: args}
	case model.NestedRef:
		return ErasedShape{kind: "named", name: t.String()}
	case model.GenericParameterRef:
		return ErasedShape{kind: "type_parameter", name: t.Name}
	case model.ArrayRef:
		elem := Erase(t.Element)
		return ErasedShape{kind: "array", elem: &elem}
	case model.PointerRef:
		return Erase(t.Pointee)
	case model.ByRefRef:
		return Erase(t.Referenced)
	default:
		text := ""
		if ref != nil {
			text = ref.String()
		}
		return ErasedShape{kind: "unknown", name: text}
	}
}

// numericPrimitives is the small set of CLR numeric primitives the TST
// collapses onto `number`; IsAssignable lets any two of them assign to each
// other, with no single top type among them.
var numericPrimitives = map[string]bool{
	"System.Byte": true, "System.SByte": true, "System.Int16": true,
	"System.UInt16": true, "System.Int32": true, "System.UInt32": true,
	"System.Int64": true, "System.UInt64": true, "System.Single": true,
	"System.Double": true, "System.Decimal": true,
}

func isObjectName(name string) bool {
	return name == "System.Object" || name == "object" || name == "any"
}

// IsAssignable implements the conservative structural assignability rules
// of spec §4.13: equal shapes assign; Unknown assigns both directions;
// arrays are covariant in element type; generic applications must agree on
// head and, element-wise, on arguments; numeric primitives widen to each
// other and everything widens to Object.
func IsAssignable(from, to ErasedShape) bool {
	if to.kind == "unknown" || from.kind == "unknown" {
		return true
	}
	if from.kind == "named" && to.kind == "named" {
		if from.name == to.name {
			return true
		}
		if isObjectName(to.name) {
			return true
		}
		if numericPrimitives[from.name] && numericPrimitives[to.name] {
			return true
		}
		return false
	}
	if from.kind == "array" && to.kind == "array" {
		return IsAssignable(*from.elem, *to.elem)
	}
	if from.kind == "generic_application" && to.kind == "generic_application" {
		if from.name != to.name || len(from.args) != len(to.args) {
			return false
		}
		for i := range from.args {
			if !IsAssignable(from.args[i], to.args[i]) {
				return false
			}
		}
		return true
	}
	if from.kind == "type_parameter" && to.kind == "type_parameter" {
		return from.name == to.name
	}
	return equalShape(from, to)
}

func equalShape(a, b ErasedShape) bool {
	if a.kind != b.kind || a.name != b.name || len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !equalShape(a.args[i], b.args[i]) {
			return false
		}
	}
	if (a.elem == nil) != (b.elem == nil) {
		return false
	}
	if a.elem != nil && !equalShape(*a.elem, *b.elem) {
		return false
	}
	return true
}

// MethodAssignable implements §4.13's method-assignability rule: same name
// and arity, same parameter count, covariant return, and parameters
// checked bidirectionally as a conservative stand-in for contravariance.
func MethodAssignable(have, want model.Method) bool {
	if have.ClrName != want.ClrName {
		return false
	}
	if len(have.Generics) != len(want.Generics) {
		return false
	}
	if len(have.Parameters) != len(want.Parameters) {
		return false
	}
	for i := range have.Parameters {
		a := Erase(have.Parameters[i].Type)
		b := Erase(want.Parameters[i].Type)
		if !IsAssignable(a, b) && !IsAssignable(b, a) {
			return false
		}
	}
	haveRet := Erase(have.ReturnType)
	wantRet := Erase(want.ReturnType)
	return IsAssignable(haveRet, wantRet)
}

// PropertyAssignable implements §4.13's property-assignability rule: same
// name; read-only properties covariant in type, mutable properties
// invariant.
func PropertyAssignable(have, want model.Property) bool {
	if have.ClrName != want.ClrName {
		return false
	}
	if len(have.IndexParameters) != len(want.IndexParameters) {
		return false
	}
	haveType := Erase(have.PropertyType)
	wantType := Erase(want.PropertyType)
	wantMutable := want.HasSetter
	if wantMutable {
		return equalShape(haveType, wantType)
	}
	return IsAssignable(haveType, wantType)
}
