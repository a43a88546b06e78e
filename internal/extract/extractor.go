package extract

import (
	"fmt"

	"intlex/internal/diag"
)

// Extractor is the per-unit extraction engine. The host traversal drives
// it through OnUnitEnter / OnMarkupNode / OnCallNode / OnUnitExit in tree
// order; a returned error aborts the unit.
type Extractor struct {
	host     Host
	opts     Options
	reporter diag.Reporter
	registry *Registry
}

// New creates an extractor bound to a host and a diagnostic sink. Zero
// option fields fall back to the built-in defaults.
func New(host Host, opts Options, reporter diag.Reporter) *Extractor {
	return &Extractor{
		host:     host,
		opts:     opts.WithDefaults(),
		reporter: reporter,
	}
}

// OnUnitEnter resets per-unit state. One Extractor serves one compilation
// unit at a time; registries are never shared across units.
func (e *Extractor) OnUnitEnter() {
	e.registry = NewRegistry(e.opts.RequireDescription)
}

// OnMarkupNode inspects a markup element and registers its descriptor when
// it is a message marker.
func (e *Extractor) OnMarkupNode(n Node) error {
	if isUnsupportedMarker(e.host, n, e.opts.ModuleSources) {
		diag.Warn(e.reporter, diag.ExtUnsupportedMarker, n.Span(),
			fmt.Sprintf("default messages are not extracted from <%s>; use <FormattedMessage> instead",
				UnsupportedComponentName))
		return nil
	}
	if !IsMarkupMarker(e.host, n, e.opts.ModuleSources, e.opts.ComponentNames) {
		return nil
	}

	desc, err := e.buildDescriptor(e.host.MarkupAttributes(n), true)
	if err != nil {
		return err
	}
	if desc.DefaultMessage == "" {
		// No literal defaultMessage at all: the descriptor is assumed to
		// be spread in from elsewhere and this usage is skipped.
		return nil
	}
	return e.registry.Store(desc, n.Span())
}

// OnCallNode inspects a call expression and registers descriptors when the
// callee is a message marker function.
//
// Known limitation: a callee bound through reassignment
// (const dm = defineMessages; dm({...})) is not resolved, because import
// origins are only tracked for direct import bindings.
func (e *Extractor) OnCallNode(n Node) error {
	if !IsFunctionMarker(e.host, n, e.opts.ModuleSources, e.opts.FunctionNames) {
		return nil
	}
	name, _ := e.host.IdentName(e.host.CallCallee(n))

	args := e.host.CallArguments(n)
	if len(args) == 0 {
		return errorf(diag.ExtBadCallShape, n.Span(),
			"%s() requires a message descriptor argument", name)
	}
	arg := args[0]
	if e.host.KindOf(arg) != KindObject {
		return errorf(diag.ExtBadCallShape, arg.Span(),
			"%s() must be called with an object expression", name)
	}

	// defineMessage takes a single descriptor; every other marker function
	// takes a map of name -> descriptor.
	if name == "defineMessage" {
		desc, err := e.buildDescriptor(e.host.ObjectProperties(arg), false)
		if err != nil {
			return err
		}
		return e.registry.Store(desc, arg.Span())
	}

	for _, pair := range e.host.ObjectProperties(arg) {
		value := pair.Value
		if e.host.KindOf(value) != KindObject {
			return errorf(diag.ExtBadCallShape, value.Span(),
				"values of the object passed to %s() must be object expressions", name)
		}
		desc, err := e.buildDescriptor(e.host.ObjectProperties(value), false)
		if err != nil {
			return err
		}
		if err := e.registry.Store(desc, value.Span()); err != nil {
			return err
		}
	}
	return nil
}

// OnUnitExit returns the unit's messages in first-registration order. The
// sequence is always produced; whether a catalog artifact is written is
// the driver's decision.
func (e *Extractor) OnUnitExit() []Descriptor {
	if e.registry == nil {
		return nil
	}
	return e.registry.Items()
}
