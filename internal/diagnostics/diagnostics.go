// Package diagnostics is the structured, coded error model used across the
// pipeline: every non-trivial failure mode is a Diagnostic, never a panic or
// a bare error string.
package diagnostics

import "fmt"

// Code identifies a diagnostic's kind. Codes are stable across releases and
// are the unit test suites assert against, not message text.
type Code string

// Gate-checked invariants (Error severity; a run with any of these fails).
const (
	CodeValidationFailed       Code = "PG_ID_000"
	CodeDuplicateMember        Code = "PG_ID_002"
	CodeReservedWordUnsanitzd  Code = "PG_ID_001"
	CodeAmbiguousOverload      Code = "PG_OV_001"
	CodeViewCoverageMissing    Code = "PG_VIEW_001"
	CodeViewCoverageDuplicate  Code = "PG_VIEW_002"
	CodeViewNameInvalid        Code = "PG_VIEW_003"
	CodeIndexerConflict        Code = "PG_IDX_001"
	CodeConstraintLoss         Code = "PG_CT_001"
	CodeCircularNamespace      Code = "PG_IMP_001"
	CodeInvalidImportModPath   Code = "PG_IMP_002"
	CodeNameConflictUnresolved Code = "PG_NM_001"
	CodeUnreservedName         Code = "PG_NM_002"
)

// Warning-severity codes (representable-but-suspicious outcomes).
const (
	CodeConstraintUnrepresentable Code = "PG_CT_002"
	CodeConstraintMergeUnion      Code = "PG_CT_003"
	CodeCovarianceNarrowed        Code = "PG_CV_001"
	CodeExternalReference         Code = "PG_IMP_003"
	CodeStaticSideCollision       Code = "PG_ST_001"
)

// Info-severity codes (book-keeping).
const (
	CodeDedupWinner        Code = "PG_DD_001"
	CodeRenameDecision     Code = "PG_NM_003"
	CodeExplicitImplSynth  Code = "PG_EI_001"
	CodeOverloadOmitted    Code = "PG_OV_002"
	CodeHiddenMemberRename Code = "PG_ID_003"
)

// Severity classifies how a Diagnostic affects the run. See spec §7.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Site names the symbol or scope a diagnostic concerns. The core pipeline
// has no lexical positions (unlike the surface-language front end this
// scheme is modeled on), so a Site is a component name plus an identifier
// path instead of a line/column.
type Site struct {
	Component string // e.g. "shape.diamond", "gate"
	Path      string // e.g. "System.Collections.Generic.List`1#GetEnumerator"
}

func (s Site) String() string {
	if s.Path == "" {
		return s.Component
	}
	return s.Component + ": " + s.Path
}

// Diagnostic is a single structured finding.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Site     Site
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Site, d.Message)
}

// New builds a Diagnostic, mirroring the teacher's diagnostics.NewError /
// diagnostics.NewAnalyzerError constructors (code, site, message).
func New(code Code, severity Severity, site Site, message string) *Diagnostic {
	return &Diagnostic{Code: code, Severity: severity, Message: message, Site: site}
}

func NewError(code Code, site Site, message string) *Diagnostic {
	return New(code, Error, site, message)
}

func NewWarning(code Code, site Site, message string) *Diagnostic {
	return New(code, Warning, site, message)
}

func NewInfo(code Code, site Site, message string) *Diagnostic {
	return New(code, Info, site, message)
}
