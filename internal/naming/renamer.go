// Package naming implements the Naming Authority (spec §4.2): the single
// chokepoint through which every emitted identifier — every type name and
// every member name, on the class surface or inside a view — is decided.
// No other component is allowed to synthesize a final name by hand.
package naming

import (
	"fmt"
	"strconv"

	"github.com/tsoniclang/tsbindgen/internal/identity"
	"github.com/tsoniclang/tsbindgen/internal/model"
)

// Reason records why a reservation took the name it did — carried on the
// decision for diagnostics/info-level reporting (spec §7 Info diagnostics:
// "rename decisions").
type Reason string

const (
	ReasonRequested              Reason = "Requested"
	ReasonStyleTransformed        Reason = "StyleTransformed"
	ReasonSanitized               Reason = "Sanitized"
	ReasonExplicitOverride        Reason = "ExplicitOverride"
	ReasonInterfaceSuffix         Reason = "ExplicitImplSuffix"
	ReasonNumericSuffix           Reason = "NumericSuffix"
	ReasonHiddenNewConflict       Reason = "HiddenNewConflict"
	ReasonStaticSideNameCollision Reason = "StaticSideNameCollision"
	ReasonViewSuffix              Reason = "ViewCollisionSuffix"
)

// MemberKind distinguishes methods — which may legally share a final name
// with other methods in the same scope (overloading) — from every other
// member kind, which may not (spec P2).
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindProperty
	KindField
	KindEvent
	KindConstructor
)

func (k MemberKind) sharesNameSlot() bool { return k == KindMethod }

// Decision is the recorded outcome of one reservation: the final name, why
// it was chosen, and who asked (spec §4.2 "Record the final (stable_id,
// scope_key) -> decision{name, reason, source}").
type Decision struct {
	Name         string
	Reason       Reason
	Source       string
	WasSanitized bool
}

type slotOccupant struct {
	isMethod bool
}

// Renamer is the Naming Authority. It is one of the two process-wide
// mutable objects threaded explicitly through every pass (spec §5, §9);
// callers must never construct final names themselves.
type Renamer struct {
	styleTransform func(string) string

	typeOverrides   map[model.TypeStableId]string
	memberOverrides map[model.MemberStableId]string

	// decisions is keyed by scopeKey + "\x00" + stableId.String(), since
	// the same StableId reserved under two different scopes (e.g.
	// class-surface and a view) gets two independent decisions.
	typeDecisions   map[string]Decision
	memberDecisions map[string]Decision

	// takenType / takenMember track which names are occupied within a
	// scope, so conflicts can be detected and suffixed deterministically.
	takenType   map[string]map[string]bool
	takenMember map[string]map[string]slotOccupant
}

func New() *Renamer {
	return &Renamer{
		styleTransform:  Preserve,
		typeOverrides:   make(map[model.TypeStableId]string),
		memberOverrides: make(map[model.MemberStableId]string),
		typeDecisions:   make(map[string]Decision),
		memberDecisions: make(map[string]Decision),
		takenType:       make(map[string]map[string]bool),
		takenMember:     make(map[string]map[string]slotOccupant),
	}
}

// Preserve is the identity name-transform style (spec §6 "name_transform ∈
// {None, CamelCase, PascalCase}" — None maps to Preserve).
func Preserve(s string) string { return s }

// AdoptStyle installs one name transform applied uniformly to every
// requested name before sanitization (spec §4.2 adopt_style).
func (r *Renamer) AdoptStyle(transform func(string) string) {
	if transform == nil {
		transform = Preserve
	}
	r.styleTransform = transform
}

// ApplyTypeOverrides injects user-supplied stable_id -> desired_name pairs
// for types that win over style and sanitation (spec §4.2 apply_overrides).
func (r *Renamer) ApplyTypeOverrides(overrides map[model.TypeStableId]string) {
	for k, v := range overrides {
		r.typeOverrides[k] = v
	}
}

func (r *Renamer) ApplyMemberOverrides(overrides map[model.MemberStableId]string) {
	for k, v := range overrides {
		r.memberOverrides[k] = v
	}
}

func typeDecisionKey(scope model.Scope, id model.TypeStableId) string {
	return scope.Key() + "\x00" + id.String()
}

func memberDecisionKey(scope model.Scope, id model.MemberStableId) string {
	return scope.Key() + "\x00" + id.String()
}

// ReserveType assigns (or recalls) the final name for a type within a
// scope. Idempotent on (stable_id, scope) (spec P4).
func (r *Renamer) ReserveType(id model.TypeStableId, requested string, scope model.Scope, source string) (string, error) {
	key := typeDecisionKey(scope, id)
	if d, ok := r.typeDecisions[key]; ok {
		return d.Name, nil // idempotent
	}

	scopeKey := scope.Key()
	if r.takenType[scopeKey] == nil {
		r.takenType[scopeKey] = make(map[string]bool)
	}

	if override, ok := r.typeOverrides[id]; ok {
		if r.takenType[scopeKey][override] {
			return "", fmt.Errorf("NameConflictUnresolved: override %q for %s already taken in scope %s", override, id, scopeKey)
		}
		r.takenType[scopeKey][override] = true
		d := Decision{Name: override, Reason: ReasonExplicitOverride, Source: source}
		r.typeDecisions[key] = d
		return d.Name, nil
	}

	styled := r.styleTransform(requested)
	sanitized, wasSanitized := identity.SanitizeIdentifier(styled)

	name := sanitized
	reason := ReasonRequested
	if wasSanitized {
		reason = ReasonSanitized
	} else if styled != requested {
		reason = ReasonStyleTransformed
	}

	if r.takenType[scopeKey][name] {
		name, reason = r.allocateNumericSuffix(r.takenType[scopeKey], sanitized)
	}

	r.takenType[scopeKey][name] = true
	d := Decision{Name: name, Reason: reason, Source: source, WasSanitized: wasSanitized}
	r.typeDecisions[key] = d
	return d.Name, nil
}

// GetFinalType returns the final name already reserved for a type in a
// scope, failing with UnreservedName otherwise (spec §4.2).
func (r *Renamer) GetFinalType(id model.TypeStableId, scope model.Scope) (string, error) {
	if d, ok := r.typeDecisions[typeDecisionKey(scope, id)]; ok {
		return d.Name, nil
	}
	return "", fmt.Errorf("UnreservedName: %s not reserved in scope %s", id, scope.Key())
}

// ReserveMember assigns (or recalls) the final name for a member within a
// scope. explicitInterfaceSimpleName is only consulted when a conflict
// occurs and source provenance calls for the interface-suffix strategy
// (spec §4.2 step 5). A reservation whose source is shape pass 7
// ("shape.StaticSideAnalysis") or pass 9 ("shape.HiddenMemberPlanning") is
// recorded with reason StaticSideNameCollision or HiddenNewConflict.
func (r *Renamer) ReserveMember(id model.MemberStableId, requested string, scope model.Scope, kind MemberKind, explicitInterfaceSimpleName string, source string) (string, error) {
	key := memberDecisionKey(scope, id)
	if d, ok := r.memberDecisions[key]; ok {
		return d.Name, nil // idempotent (spec P4)
	}

	scopeKey := scope.Key()
	if r.takenMember[scopeKey] == nil {
		r.takenMember[scopeKey] = make(map[string]slotOccupant)
	}
	taken := r.takenMember[scopeKey]

	if override, ok := r.memberOverrides[id]; ok {
		if occ, exists := taken[override]; exists && !(kind.sharesNameSlot() && occ.isMethod) {
			return "", fmt.Errorf("NameConflictUnresolved: override %q for %s already taken in scope %s", override, id, scopeKey)
		}
		taken[override] = slotOccupant{isMethod: kind.sharesNameSlot()}
		d := Decision{Name: override, Reason: ReasonExplicitOverride, Source: source}
		r.memberDecisions[key] = d
		return d.Name, nil
	}

	styled := r.styleTransform(requested)
	sanitized, wasSanitized := identity.SanitizeIdentifier(styled)

	name := sanitized
	reason := ReasonRequested
	if wasSanitized {
		reason = ReasonSanitized
	} else if styled != requested {
		reason = ReasonStyleTransformed
	}

	if occ, exists := taken[name]; exists && !(kind.sharesNameSlot() && occ.isMethod) {
		if explicitInterfaceSimpleName != "" {
			candidate := name + "_" + explicitInterfaceSimpleName
			if occ2, exists2 := taken[candidate]; !exists2 || (kind.sharesNameSlot() && occ2.isMethod) {
				name, reason = candidate, ReasonInterfaceSuffix
			} else {
				name, reason = r.allocateMemberSuffix(taken, sanitized, kind)
			}
		} else {
			name, reason = r.allocateMemberSuffix(taken, sanitized, kind)
		}
	}

	switch source {
	case "shape.StaticSideAnalysis":
		reason = ReasonStaticSideNameCollision
	case "shape.HiddenMemberPlanning":
		reason = ReasonHiddenNewConflict
	}

	taken[name] = slotOccupant{isMethod: kind.sharesNameSlot()}
	d := Decision{Name: name, Reason: reason, Source: source, WasSanitized: wasSanitized}
	r.memberDecisions[key] = d
	return d.Name, nil
}

// GetFinalMember returns the final name already reserved for a member in
// a scope, failing with UnreservedName otherwise.
func (r *Renamer) GetFinalMember(id model.MemberStableId, scope model.Scope) (string, error) {
	if d, ok := r.memberDecisions[memberDecisionKey(scope, id)]; ok {
		return d.Name, nil
	}
	return "", fmt.Errorf("UnreservedName: %s not reserved in scope %s", id, scope.Key())
}

// PeekFinalMember is a non-mutating query: it returns the name a future
// reservation of requestedBase would be given in scope, without recording
// anything. Used by Name Reservation's view-member collision probe
// (reserveViewMember) and the class-surface dedup pass (shape pass 11) to
// ask "what would the
// Renamer call this" before committing to a decision.
func (r *Renamer) PeekFinalMember(scope model.Scope, requestedBase string, kind MemberKind) string {
	scopeKey := scope.Key()
	taken := r.takenMember[scopeKey]

	styled := r.styleTransform(requestedBase)
	sanitized, _ := identity.SanitizeIdentifier(styled)

	if taken == nil {
		return sanitized
	}
	if occ, exists := taken[sanitized]; !exists || (kind.sharesNameSlot() && occ.isMethod) {
		return sanitized
	}
	name, _ := r.allocateMemberSuffix(taken, sanitized, kind)
	return name
}

// IsTaken reports whether name is occupied in scope (for non-method kinds;
// a method name is never "taken" in the exclusionary sense another method
// cares about).
func (r *Renamer) IsTaken(scope model.Scope, name string, kind MemberKind) bool {
	taken := r.takenMember[scope.Key()]
	if taken == nil {
		return false
	}
	occ, exists := taken[name]
	if !exists {
		return false
	}
	return !(kind.sharesNameSlot() && occ.isMethod)
}

// ListReserved returns every name currently occupied in a member scope.
func (r *Renamer) ListReserved(scope model.Scope) []string {
	taken := r.takenMember[scope.Key()]
	out := make([]string, 0, len(taken))
	for name := range taken {
		out = append(out, name)
	}
	return out
}

func (r *Renamer) allocateNumericSuffix(taken map[string]bool, base string) (string, Reason) {
	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate, ReasonNumericSuffix
		}
	}
}

func (r *Renamer) allocateMemberSuffix(taken map[string]slotOccupant, base string, kind MemberKind) (string, Reason) {
	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		occ, exists := taken[candidate]
		if !exists || (kind.sharesNameSlot() && occ.isMethod) {
			return candidate, ReasonNumericSuffix
		}
	}
}
