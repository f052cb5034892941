// Package policy loads and validates the pipeline's configuration surface
// (spec §6 "Configuration surface"): the set of recognized knobs that steer
// Shape-pass behavior, naming style, and static-side conflict handling.
// Modeled on the teacher's funxy.yaml loader: parse, validate, setDefaults.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DiamondPolicy selects how shape pass 5 (diamond resolution) handles a
// same-name method inherited along two or more interface paths.
type DiamondPolicy string

const (
	DiamondOverloadAll    DiamondPolicy = "OverloadAll"
	DiamondPreferDerived  DiamondPolicy = "PreferDerived"
	DiamondError          DiamondPolicy = "Error"
)

// ExplicitImplPolicy selects how a class satisfies an interface member it
// cannot expose on its structural class surface.
type ExplicitImplPolicy string

const (
	ExplicitImplSynthesizeWithSuffix ExplicitImplPolicy = "SynthesizeWithSuffix"
	ExplicitImplEmitExplicitViews    ExplicitImplPolicy = "EmitExplicitViews"
	ExplicitImplSkip                ExplicitImplPolicy = "Skip"
)

// ConstraintMergePolicy selects how shape pass 12 merges two constraint
// sets reaching the same generic parameter from different paths.
type ConstraintMergePolicy string

const (
	ConstraintMergeIntersection ConstraintMergePolicy = "Intersection"
	ConstraintMergeUnion        ConstraintMergePolicy = "Union"
	ConstraintMergePreferLeft   ConstraintMergePolicy = "PreferLeft"
)

// NameTransform selects the uniform identifier style the Renamer applies
// before sanitization (spec §4.2 adopt_style).
type NameTransform string

const (
	TransformNone       NameTransform = "None"
	TransformCamelCase  NameTransform = "CamelCase"
	TransformPascalCase NameTransform = "PascalCase"
)

// StaticConflictPolicy selects how shape pass 7 (static-side analysis)
// resolves a derived/base static member name collision.
type StaticConflictPolicy string

const (
	StaticConflictNumericSuffix       StaticConflictPolicy = "NumericSuffix"
	StaticConflictDisambiguatingSuffix StaticConflictPolicy = "DisambiguatingSuffix"
	StaticConflictError               StaticConflictPolicy = "Error"
)

// StaticSideAction selects the overall posture of shape pass 7.
type StaticSideAction string

const (
	StaticSideAnalyze    StaticSideAction = "Analyze"
	StaticSideAutoRename StaticSideAction = "AutoRename"
	StaticSideError      StaticSideAction = "Error"
)

type InterfacePolicy struct {
	InlineAll bool          `yaml:"inline_all"`
	Diamond   DiamondPolicy `yaml:"diamond"`
}

type ClassPolicy struct {
	KeepExtends        bool               `yaml:"keep_extends"`
	HiddenMemberSuffix string             `yaml:"hidden_member_suffix"`
	ExplicitImpl       ExplicitImplPolicy `yaml:"explicit_impl"`
}

type IndexerPolicy struct {
	PropertyWhenSingle bool   `yaml:"property_when_single"`
	MethodName         string `yaml:"method_name"`
}

type ConstraintPolicy struct {
	StrictClosure         bool                   `yaml:"strict_closure"`
	Merge                 ConstraintMergePolicy  `yaml:"merge"`
	AllowCtorConstraintLoss bool                 `yaml:"allow_ctor_constraint_loss"`
}

type EmissionPolicy struct {
	NameTransform   NameTransform `yaml:"name_transform"`
	DocComments     bool          `yaml:"doc_comment_emission"`
}

type RenamingPolicy struct {
	StaticConflict         StaticConflictPolicy `yaml:"static_conflict"`
	HiddenNew              string                `yaml:"hidden_new"`
	ExplicitMap            map[string]string     `yaml:"explicit_map"`
	AllowStaticMemberRename bool                 `yaml:"allow_static_member_rename"`
}

type ModulesPolicy struct {
	UseNamespaceDirectories bool `yaml:"use_namespace_directories"`
	AlwaysAliasImports      bool `yaml:"always_alias_imports"`
}

type StaticSidePolicy struct {
	Action StaticSideAction `yaml:"action"`
}

// Policy is the full configuration surface (spec §6).
type Policy struct {
	Interface  InterfacePolicy  `yaml:"interface"`
	Class      ClassPolicy      `yaml:"class"`
	Indexer    IndexerPolicy    `yaml:"indexer"`
	Constraint ConstraintPolicy `yaml:"constraint"`
	Emission   EmissionPolicy   `yaml:"emission"`
	Renaming   RenamingPolicy   `yaml:"renaming"`
	Modules    ModulesPolicy    `yaml:"modules"`
	StaticSide StaticSidePolicy `yaml:"static_side"`
}

// Load reads and parses a policy YAML file, applying defaults for any
// omitted section.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses policy YAML content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Policy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return p, nil
}

// Default returns the policy with every knob at its spec-documented default.
func Default() *Policy {
	return &Policy{
		Interface: InterfacePolicy{InlineAll: true, Diamond: DiamondOverloadAll},
		Class: ClassPolicy{
			KeepExtends:        true,
			HiddenMemberSuffix: "_new",
			ExplicitImpl:       ExplicitImplEmitExplicitViews,
		},
		Indexer: IndexerPolicy{PropertyWhenSingle: true, MethodName: "Item"},
		Constraint: ConstraintPolicy{
			StrictClosure: true,
			Merge:         ConstraintMergeIntersection,
		},
		Emission: EmissionPolicy{NameTransform: TransformNone, DocComments: true},
		Renaming: RenamingPolicy{
			StaticConflict: StaticConflictDisambiguatingSuffix,
			HiddenNew:      "_new",
			ExplicitMap:    map[string]string{},
		},
		Modules:    ModulesPolicy{UseNamespaceDirectories: true},
		StaticSide: StaticSidePolicy{Action: StaticSideAutoRename},
	}
}

func (p *Policy) validate(path string) error {
	switch p.Interface.Diamond {
	case "", DiamondOverloadAll, DiamondPreferDerived, DiamondError:
	default:
		return fmt.Errorf("%s: interface.diamond: unknown policy %q", path, p.Interface.Diamond)
	}
	switch p.Class.ExplicitImpl {
	case "", ExplicitImplSynthesizeWithSuffix, ExplicitImplEmitExplicitViews, ExplicitImplSkip:
	default:
		return fmt.Errorf("%s: class.explicit_impl: unknown policy %q", path, p.Class.ExplicitImpl)
	}
	switch p.Constraint.Merge {
	case "", ConstraintMergeIntersection, ConstraintMergeUnion, ConstraintMergePreferLeft:
	default:
		return fmt.Errorf("%s: constraint.merge: unknown policy %q", path, p.Constraint.Merge)
	}
	switch p.Emission.NameTransform {
	case "", TransformNone, TransformCamelCase, TransformPascalCase:
	default:
		return fmt.Errorf("%s: emission.name_transform: unknown transform %q", path, p.Emission.NameTransform)
	}
	switch p.Renaming.StaticConflict {
	case "", StaticConflictNumericSuffix, StaticConflictDisambiguatingSuffix, StaticConflictError:
	default:
		return fmt.Errorf("%s: renaming.static_conflict: unknown policy %q", path, p.Renaming.StaticConflict)
	}
	switch p.StaticSide.Action {
	case "", StaticSideAnalyze, StaticSideAutoRename, StaticSideError:
	default:
		return fmt.Errorf("%s: static_side.action: unknown action %q", path, p.StaticSide.Action)
	}
	return nil
}

// setDefaults fills in zero-value fields a partially-specified YAML
// document left empty.
func (p *Policy) setDefaults() {
	if p.Class.HiddenMemberSuffix == "" {
		p.Class.HiddenMemberSuffix = "_new"
	}
	if p.Indexer.MethodName == "" {
		p.Indexer.MethodName = "Item"
	}
	if p.Interface.Diamond == "" {
		p.Interface.Diamond = DiamondOverloadAll
	}
	if p.Class.ExplicitImpl == "" {
		p.Class.ExplicitImpl = ExplicitImplEmitExplicitViews
	}
	if p.Constraint.Merge == "" {
		p.Constraint.Merge = ConstraintMergeIntersection
	}
	if p.Emission.NameTransform == "" {
		p.Emission.NameTransform = TransformNone
	}
	if p.Renaming.StaticConflict == "" {
		p.Renaming.StaticConflict = StaticConflictDisambiguatingSuffix
	}
	if p.Renaming.ExplicitMap == nil {
		p.Renaming.ExplicitMap = map[string]string{}
	}
	if p.StaticSide.Action == "" {
		p.StaticSide.Action = StaticSideAutoRename
	}
}
