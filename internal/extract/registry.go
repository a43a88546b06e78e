package extract

import (
	"intlex/internal/diag"
	"intlex/internal/source"
)

// Descriptor is the unit of extracted data: one translatable message.
// Description may be empty (absent); ID and DefaultMessage are required at
// registration time.
type Descriptor struct {
	ID             string `json:"id"`
	Description    string `json:"description,omitempty"`
	DefaultMessage string `json:"defaultMessage"`
}

type stored struct {
	desc Descriptor
	span source.Span
}

// Registry accumulates the validated descriptors of one compilation unit,
// preserving first-registration order and detecting identity conflicts.
// One registry exists per unit; it is never shared.
type Registry struct {
	order              []string
	byID               map[string]stored
	requireDescription bool
}

// NewRegistry creates an empty per-unit registry. When requireDescription
// is set, descriptors without a description fail registration.
func NewRegistry(requireDescription bool) *Registry {
	return &Registry{
		byID:               make(map[string]stored),
		requireDescription: requireDescription,
	}
}

// Store registers a descriptor extracted at sp.
//
// Missing ID or DefaultMessage is an error regardless of configuration.
// Registering the exact same descriptor twice is a no-op; a same-ID
// descriptor with different content is a conflict.
func (r *Registry) Store(d Descriptor, sp source.Span) error {
	if d.ID == "" || d.DefaultMessage == "" {
		code := diag.ExtMissingID
		field := propID
		if d.ID != "" {
			code = diag.ExtMissingDefault
			field = propDefaultMessage
		}
		return errorf(code, sp, "message descriptor is missing the required %q field", field)
	}
	if r.requireDescription && d.Description == "" {
		return errorf(diag.ExtMissingDescription, sp,
			"message %q is missing a description, required by configuration", d.ID)
	}

	if prev, ok := r.byID[d.ID]; ok {
		if prev.desc != d {
			err := errorf(diag.ExtDuplicateID, sp,
				"duplicate message id %q with conflicting description or default message", d.ID)
			return err.withNoteSpan(prev.span)
		}
		// Idempotent re-registration, e.g. the same component rendered
		// twice with identical props.
		return nil
	}

	r.order = append(r.order, d.ID)
	r.byID[d.ID] = stored{desc: d, span: sp}
	return nil
}

// Items returns the descriptors in first-registration order.
func (r *Registry) Items() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id].desc
	}
	return out
}

// Len reports how many distinct ids are registered.
func (r *Registry) Len() int {
	return len(r.order)
}

// withNoteSpan remembers where the conflicting id was first registered.
func (e *Error) withNoteSpan(sp source.Span) *Error {
	e.FirstSeen = &sp
	return e
}
