package lint

// =============================================================================
// Positions and Diagnostics
// =============================================================================

// Position is a location in a source file. Line and Column are 1-based;
// Column counts bytes.
type Position struct {
	Line   int
	Column int
}

// Diagnostic represents a single rule violation.
type Diagnostic struct {
	RuleID    string
	Severity  Severity
	Path      string
	Pos       Position
	EndColumn int    // Exclusive end of the matched span on the same line
	Match     string // The text that triggered the rule
	Message   string
	Hint      string // Optional replacement suggestion
	Context   string // Full source line, for caret display
}

// =============================================================================
// Rule Options
// =============================================================================

// OptionKind is the value type of a rule option.
type OptionKind int

// Option kinds.
const (
	OptionString OptionKind = iota
	OptionStringList
	OptionInt
	OptionBool
)

// String returns the name used in documentation.
func (k OptionKind) String() string {
	switch k {
	case OptionString:
		return "string"
	case OptionStringList:
		return "list"
	case OptionInt:
		return "int"
	case OptionBool:
		return "bool"
	default:
		return "unknown"
	}
}

// OptionDef declares one configurable option of a rule. The same definition
// produces the hook's command-line flag and the config file key.
type OptionDef struct {
	Key     string     // Config key, e.g. "lookahead"
	Flag    string     // Flag name; defaults to Key with '_' replaced by '-'
	Kind    OptionKind // Value type
	Default any        // Default value, used for flag defaults and docs
	Usage   string
}

// FlagName returns the command-line flag for the option.
func (o OptionDef) FlagName() string {
	if o.Flag != "" {
		return o.Flag
	}
	b := []byte(o.Key)
	for i, c := range b {
		if c == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// CheckFunc scans one source file and returns its diagnostics.
// It must be pure: the same source and options always give the same result.
type CheckFunc func(src *Source, opts map[string]any) []Diagnostic

// ValidateFunc checks rule options before any file is read.
type ValidateFunc func(opts map[string]any) error

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string      // Unique identifier, e.g. "SP02"
	Name        string      // Human-readable name, e.g. "spacing.no_space_before_cite"
	Hook        string      // Hook ID and subcommand name, e.g. "no-space-before-cite"
	Group       string      // Category, e.g. "spacing", "reference", "convention"
	Description string      // One-line description
	Severity    Severity    // Default severity
	Options     []OptionDef // Options this rule accepts
	Check       CheckFunc
	Validate    ValidateFunc // Optional

	// RequireOneOf lists option keys of which at least one must be set when
	// the rule is invoked as a standalone hook.
	RequireOneOf []string

	// OptIn rules only run under "lint" when explicitly enabled.
	OptIn bool

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // LaTeX showing the anti-pattern
	GoodExample string // LaTeX showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// =============================================================================
// Rule Interface
// =============================================================================

// Rule is the interface the registry and runner work with.
type Rule interface {
	ID() string
	Name() string
	Hook() string
	Group() string
	Description() string
	DefaultSeverity() Severity
	Options() []OptionDef
	ConfigKeys() []string
	RequireOneOf() []string
	OptIn() bool

	Rationale() string
	BadExample() string
	GoodExample() string
	Fix() string

	// Validate checks options eagerly; a nil error means Check may run.
	Validate(opts map[string]any) error

	// Check scans a source with the given options.
	Check(src *Source, opts map[string]any) []Diagnostic
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID              string
	Name            string
	Hook            string
	Group           string
	Description     string
	DefaultSeverity Severity
	Options         []OptionDef
	OptIn           bool

	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// GetRuleInfo extracts metadata from a Rule.
func GetRuleInfo(r Rule) RuleInfo {
	return RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Hook:            r.Hook(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		Options:         r.Options(),
		OptIn:           r.OptIn(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Hook() string              { return w.def.Hook }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) Options() []OptionDef      { return w.def.Options }
func (w *wrappedRuleDef) RequireOneOf() []string    { return w.def.RequireOneOf }
func (w *wrappedRuleDef) OptIn() bool               { return w.def.OptIn }

func (w *wrappedRuleDef) ConfigKeys() []string {
	keys := make([]string, 0, len(w.def.Options))
	for _, o := range w.def.Options {
		keys = append(keys, o.Key)
	}
	return keys
}

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Validate(opts map[string]any) error {
	if w.def.Validate == nil {
		return nil
	}
	return w.def.Validate(opts)
}

func (w *wrappedRuleDef) Check(src *Source, opts map[string]any) []Diagnostic {
	if w.def.Check == nil || src == nil {
		return nil
	}
	return w.def.Check(src, opts)
}
