package extract

import (
	"fmt"
	"strings"

	"intlex/internal/diag"
	"intlex/internal/icu"
)

// buildDescriptor reduces property pairs to a Descriptor. markup marks the
// pairs as markup attributes, which changes two things: attribute values
// get one container unwrap before evaluation, and message-syntax failures
// caused by backslash escapes get the targeted wrap-it suggestion.
//
// Unrecognized property names are ignored: descriptors may carry arbitrary
// extra props used for other purposes. Non-constant keys or values degrade
// per-property with a warning.
func (e *Extractor) buildDescriptor(pairs []PropertyPair, markup bool) (Descriptor, error) {
	var d Descriptor
	for _, pair := range pairs {
		name, ok := e.propertyName(pair.Key)
		if !ok {
			continue
		}
		switch name {
		case propID, propDescription, propDefaultMessage:
		default:
			continue
		}

		value := pair.Value
		if value == nil {
			diag.Warn(e.reporter, diag.ExtNonConstantValue, pair.Key.Span(),
				fmt.Sprintf("%q has no value; property skipped", name))
			continue
		}
		if markup {
			value = e.host.Unwrap(value)
		}
		ev := e.host.Evaluate(value)
		if !ev.Confident {
			diag.Warn(e.reporter, diag.ExtNonConstantValue, value.Span(),
				fmt.Sprintf("%q value is not a compile-time constant; property skipped", name))
			continue
		}
		text := stringValue(ev.Value)

		switch name {
		case propID:
			d.ID = text
		case propDescription:
			d.Description = text
		case propDefaultMessage:
			normalized, err := icu.Normalize(text)
			if err != nil {
				return Descriptor{}, e.messageSyntaxError(pair.Value, markup, err)
			}
			d.DefaultMessage = normalized
		}
	}
	return d, nil
}

// propertyName resolves a key node to a property name. Identifier keys
// resolve directly; anything else goes through the evaluator.
func (e *Extractor) propertyName(key Node) (string, bool) {
	if name, ok := e.host.IdentName(key); ok {
		return name, true
	}
	ev := e.host.Evaluate(key)
	if !ev.Confident {
		diag.Warn(e.reporter, diag.ExtNonConstantKey, key.Span(),
			"message descriptor property name is not a compile-time constant; property skipped")
		return "", false
	}
	return stringValue(ev.Value), true
}

func (e *Extractor) messageSyntaxError(value Node, markup bool, cause error) *Error {
	sp := value.Span()
	if markup && strings.Contains(e.host.RawText(value), `\`) {
		err := errorf(diag.ExtBadEscape, sp,
			"backslash escapes are not parsed in markup attribute text; wrap the value in an expression container: defaultMessage={\"...\"}")
		err.Fix = &diag.Fix{Title: "wrap the attribute value in an expression container"}
		return err
	}
	return errorf(diag.ExtBadMessageSyntax, sp, "invalid default message: %v", cause)
}

// stringValue renders a constant as the string the descriptor stores.
// Evaluated descriptor fields are strings in practice; other scalar
// constants keep their printed form.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
