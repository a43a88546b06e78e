package extract

// UnsupportedComponentName structurally looks like a message marker but
// carries no extractable descriptor; usages produce a warning and are
// skipped.
const UnsupportedComponentName = "FormattedPlural"

// Recognized descriptor property names. Anything else on a marker usage is
// silently ignored.
const (
	propID             = "id"
	propDescription    = "description"
	propDefaultMessage = "defaultMessage"
)

var (
	// DefaultModuleSources is the package name imports must resolve to.
	DefaultModuleSources = []string{"react-intl"}

	// DefaultComponentNames are the markup markers scanned for descriptors.
	DefaultComponentNames = []string{
		"FormattedMessage",
		"FormattedHTMLMessage",
		"FormattedList",
		"FormattedDisplayName",
	}

	// DefaultFunctionNames are the call markers scanned for descriptors.
	DefaultFunctionNames = []string{
		"defineMessages",
		"defineMessage",
	}
)

// Options configures one extraction unit. The zero value means defaults.
type Options struct {
	ModuleSources      []string
	ComponentNames     []string
	FunctionNames      []string
	RequireDescription bool
}

// WithDefaults fills empty fields with the built-in name sets.
func (o Options) WithDefaults() Options {
	if len(o.ModuleSources) == 0 {
		o.ModuleSources = DefaultModuleSources
	}
	if len(o.ComponentNames) == 0 {
		o.ComponentNames = DefaultComponentNames
	}
	if len(o.FunctionNames) == 0 {
		o.FunctionNames = DefaultFunctionNames
	}
	return o
}
