package extract

// IsMarkupMarker reports whether n is a markup element whose tag identifier
// resolves, through the host's import-origin lookup, to one of
// componentNames imported from one of sources.
func IsMarkupMarker(h Host, n Node, sources, componentNames []string) bool {
	if h.KindOf(n) != KindMarkupElement {
		return false
	}
	return h.ReferencesImport(h.MarkupName(n), sources, componentNames)
}

// IsFunctionMarker reports whether n is a call expression whose callee
// resolves to one of functionNames imported from one of sources.
func IsFunctionMarker(h Host, n Node, sources, functionNames []string) bool {
	if h.KindOf(n) != KindCall {
		return false
	}
	return h.ReferencesImport(h.CallCallee(n), sources, functionNames)
}

// isUnsupportedMarker detects the pluralization-only component, which is
// never extracted from but deserves a targeted warning instead of silence.
func isUnsupportedMarker(h Host, n Node, sources []string) bool {
	if h.KindOf(n) != KindMarkupElement {
		return false
	}
	return h.ReferencesImport(h.MarkupName(n), sources, []string{UnsupportedComponentName})
}
