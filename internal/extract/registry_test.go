package extract

import (
	"errors"
	"testing"

	"intlex/internal/diag"
	"intlex/internal/source"
)

func span(start uint32) source.Span {
	return source.Span{File: 0, Start: start, End: start + 10}
}

func TestRegistry_StoreAndOrder(t *testing.T) {
	r := NewRegistry(false)

	descs := []Descriptor{
		{ID: "nav.home", DefaultMessage: "Home"},
		{ID: "nav.about", DefaultMessage: "About"},
		{ID: "nav.contact", DefaultMessage: "Contact"},
	}
	for i, d := range descs {
		if err := r.Store(d, span(uint32(i*100))); err != nil {
			t.Fatalf("Store(%q): %v", d.ID, err)
		}
	}

	items := r.Items()
	if len(items) != 3 {
		t.Fatalf("Len = %d, want 3", len(items))
	}
	for i, d := range descs {
		if items[i] != d {
			t.Errorf("items[%d] = %+v, want %+v (registration order must be preserved)", i, items[i], d)
		}
	}
}

func TestRegistry_IdempotentReRegistration(t *testing.T) {
	r := NewRegistry(false)
	d := Descriptor{ID: "greeting", Description: "hi", DefaultMessage: "Hello"}

	if err := r.Store(d, span(0)); err != nil {
		t.Fatalf("first Store: %v", err)
	}
	if err := r.Store(d, span(500)); err != nil {
		t.Fatalf("identical re-registration must be a no-op, got: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want exactly one entry", r.Len())
	}
}

func TestRegistry_ConflictDetection(t *testing.T) {
	tests := []struct {
		name   string
		second Descriptor
	}{
		{
			name:   "different default message",
			second: Descriptor{ID: "greeting", DefaultMessage: "Hi there"},
		},
		{
			name:   "different description",
			second: Descriptor{ID: "greeting", Description: "casual", DefaultMessage: "Hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(false)
			first := Descriptor{ID: "greeting", DefaultMessage: "Hello"}
			if err := r.Store(first, span(0)); err != nil {
				t.Fatal(err)
			}

			err := r.Store(tt.second, span(300))
			var xerr *Error
			if !errors.As(err, &xerr) {
				t.Fatalf("Store = %v, want *Error", err)
			}
			if xerr.Code != diag.ExtDuplicateID {
				t.Errorf("Code = %v, want ExtDuplicateID", xerr.Code)
			}
			if xerr.FirstSeen == nil || xerr.FirstSeen.Start != 0 {
				t.Errorf("FirstSeen = %v, want the first registration span", xerr.FirstSeen)
			}
			if r.Len() != 1 {
				t.Errorf("Len = %d after conflict, want 1", r.Len())
			}
		})
	}
}

func TestRegistry_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		code diag.Code
	}{
		{name: "missing id", d: Descriptor{DefaultMessage: "Hello"}, code: diag.ExtMissingID},
		{name: "missing default message", d: Descriptor{ID: "x"}, code: diag.ExtMissingDefault},
		{name: "missing both", d: Descriptor{}, code: diag.ExtMissingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Required fields fail regardless of configuration.
			for _, strict := range []bool{false, true} {
				r := NewRegistry(strict)
				err := r.Store(tt.d, span(0))
				var xerr *Error
				if !errors.As(err, &xerr) {
					t.Fatalf("strict=%v: Store = %v, want *Error", strict, err)
				}
				if xerr.Code != tt.code {
					t.Errorf("strict=%v: Code = %v, want %v", strict, xerr.Code, tt.code)
				}
			}
		})
	}
}

func TestRegistry_RequireDescription(t *testing.T) {
	d := Descriptor{ID: "x", DefaultMessage: "X"}

	strict := NewRegistry(true)
	err := strict.Store(d, span(0))
	var xerr *Error
	if !errors.As(err, &xerr) || xerr.Code != diag.ExtMissingDescription {
		t.Errorf("strict Store = %v, want ExtMissingDescription", err)
	}

	lax := NewRegistry(false)
	if err := lax.Store(d, span(0)); err != nil {
		t.Errorf("lax Store = %v, want success", err)
	}

	withDesc := d
	withDesc.Description = "the X message"
	strict2 := NewRegistry(true)
	if err := strict2.Store(withDesc, span(0)); err != nil {
		t.Errorf("strict Store with description = %v, want success", err)
	}
}
