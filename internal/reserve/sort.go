package reserve

import (
	"sort"

	"github.com/tsoniclang/tsbindgen/internal/model"
	"github.com/tsoniclang/tsbindgen/internal/signature"
)

// The sortedX helpers give each member family a deterministic reservation
// order within its scope: by CLR name, then canonical signature — so
// numeric-suffix allocation never depends on slice iteration order.

func sortedFields(fields []model.Field) []model.Field {
	out := append([]model.Field(nil), fields...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClrName != out[j].ClrName {
			return out[i].ClrName < out[j].ClrName
		}
		return signature.FieldOf(out[i]) < signature.FieldOf(out[j])
	})
	return out
}

func sortedProps(props []model.Property) []model.Property {
	out := append([]model.Property(nil), props...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClrName != out[j].ClrName {
			return out[i].ClrName < out[j].ClrName
		}
		return signature.PropertyOf(out[i]) < signature.PropertyOf(out[j])
	})
	return out
}

func sortedEvents(events []model.Event) []model.Event {
	out := append([]model.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClrName != out[j].ClrName {
			return out[i].ClrName < out[j].ClrName
		}
		return signature.EventOf(out[i]) < signature.EventOf(out[j])
	})
	return out
}

func sortedMethods(methods []model.Method) []model.Method {
	out := append([]model.Method(nil), methods...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClrName != out[j].ClrName {
			return out[i].ClrName < out[j].ClrName
		}
		return signature.MethodOf(out[i]) < signature.MethodOf(out[j])
	})
	return out
}
