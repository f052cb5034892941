package loadboundary

// manifestFile is the on-disk shape read by ManifestSource: a YAML
// standin for whatever CLR assembly-reading frontend a production
// deployment would plug in here, modeled on the teacher's own
// internal/ext/config.go typed-struct-plus-yaml.v3 loading style.
//
// Each manifest describes one or more assemblies' worth of namespaces and
// types in CLR-flavored terms only: nothing here sets an EmitName or any
// other TST concept, matching the Load boundary contract (spec §6).
type manifestFile struct {
	Assemblies []string            `yaml:"assemblies"`
	Namespaces []manifestNamespace `yaml:"namespaces"`
}

type manifestNamespace struct {
	Name  string         `yaml:"name"`
	Types []manifestType `yaml:"types"`
}

type manifestType struct {
	ClrFullName string             `yaml:"clr_full_name"`
	SimpleName  string             `yaml:"simple_name"`
	Kind        string             `yaml:"kind"` // Class|Interface|Struct|Enum|Delegate|StaticNamespace
	Arity       int                `yaml:"arity"`
	Generics    []manifestGeneric  `yaml:"generics"`
	BaseType    *manifestTypeRef   `yaml:"base_type"`
	Interfaces  []manifestTypeRef  `yaml:"interfaces"`
	Methods     []manifestMethod   `yaml:"methods"`
	Properties  []manifestProperty `yaml:"properties"`
	Fields      []manifestField    `yaml:"fields"`
	Events      []manifestEvent    `yaml:"events"`
	Ctors       []manifestCtor     `yaml:"constructors"`
	IsValueType bool               `yaml:"is_value_type"`
	IsAbstract  bool               `yaml:"is_abstract"`
	IsSealed    bool               `yaml:"is_sealed"`
	IsStatic    bool               `yaml:"is_static"`
}

type manifestGeneric struct {
	Name           string            `yaml:"name"`
	Variance       string            `yaml:"variance"` // Invariant|Covariant|Contravariant
	Constraints    []manifestTypeRef `yaml:"constraints"`
	RequiresNew    bool              `yaml:"requires_new"`
	RequiresStruct bool              `yaml:"requires_struct"`
	RequiresClass  bool              `yaml:"requires_class"`
}

// manifestTypeRef is a tagged-union-in-YAML type reference. Only the
// fields relevant to Kind are populated; grounded on the same
// discriminated-shape idea as model.TypeReference, translated into a flat
// struct because YAML has no sum types.
type manifestTypeRef struct {
	Kind       string             `yaml:"kind"` // named|nested|genericparam|array|pointer|byref
	Assembly   string             `yaml:"assembly"`
	Namespace  string             `yaml:"namespace"`
	Name       string             `yaml:"name"`
	Arity      int                `yaml:"arity"`
	Args       []manifestTypeRef  `yaml:"args"`
	Declaring  *manifestTypeRef   `yaml:"declaring"`
	NestedName string             `yaml:"nested_name"`
	ParamScope string             `yaml:"param_scope"` // type|method
	Position   int                `yaml:"position"`
	Element    *manifestTypeRef   `yaml:"element"`
	Rank       int                `yaml:"rank"`
	Pointee    *manifestTypeRef   `yaml:"pointee"`
	Referenced *manifestTypeRef   `yaml:"referenced"`
}

type manifestParam struct {
	Name     string           `yaml:"name"`
	Type     manifestTypeRef  `yaml:"type"`
	Kind     string           `yaml:"kind"` // in|ref|out|params
	Optional bool             `yaml:"optional"`
	Default  string           `yaml:"default"`
}

type manifestMethod struct {
	Name            string            `yaml:"name"`
	Params          []manifestParam   `yaml:"params"`
	Return          *manifestTypeRef  `yaml:"return"`
	Generics        []manifestGeneric `yaml:"generics"`
	IsStatic        bool              `yaml:"is_static"`
	IsAbstract      bool              `yaml:"is_abstract"`
	IsVirtual       bool              `yaml:"is_virtual"`
	IsOverride      bool              `yaml:"is_override"`
	IsSealed        bool              `yaml:"is_sealed"`
	IsNew           bool              `yaml:"is_new"`
	Visibility      string            `yaml:"visibility"`
	SourceInterface *manifestTypeRef  `yaml:"source_interface"`
}

type manifestProperty struct {
	Name            string            `yaml:"name"`
	Type            manifestTypeRef   `yaml:"type"`
	IndexParams     []manifestParam   `yaml:"index_params"`
	HasGetter       bool              `yaml:"has_getter"`
	HasSetter       bool              `yaml:"has_setter"`
	IsStatic        bool              `yaml:"is_static"`
	IsAbstract      bool              `yaml:"is_abstract"`
	IsVirtual       bool              `yaml:"is_virtual"`
	IsOverride      bool              `yaml:"is_override"`
	IsSealed        bool              `yaml:"is_sealed"`
	IsNew           bool              `yaml:"is_new"`
	Visibility      string            `yaml:"visibility"`
	SourceInterface *manifestTypeRef  `yaml:"source_interface"`
}

type manifestField struct {
	Name       string          `yaml:"name"`
	Type       manifestTypeRef `yaml:"type"`
	IsStatic   bool            `yaml:"is_static"`
	IsReadonly bool            `yaml:"is_readonly"`
	Visibility string          `yaml:"visibility"`
}

type manifestEvent struct {
	Name            string           `yaml:"name"`
	HandlerType     manifestTypeRef  `yaml:"handler_type"`
	IsStatic        bool             `yaml:"is_static"`
	Visibility      string           `yaml:"visibility"`
	SourceInterface *manifestTypeRef `yaml:"source_interface"`
}

type manifestCtor struct {
	Params     []manifestParam `yaml:"params"`
	Visibility string          `yaml:"visibility"`
}
