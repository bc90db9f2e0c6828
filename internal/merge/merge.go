package merge

// Merge produces a complete, default-filled document from a possibly partial
// or absent remote document. The result contains every key from defaults:
//
//   - key absent in remote: default value wins
//   - both sides nested maps: merged recursively
//   - remote scalar: remote wins outright
//   - remote array: wins only when non-empty, otherwise the default array
//     is kept (an accidental empty save must not blank a gallery)
//   - any shape mismatch: default wins
//
// Remote keys without a default counterpart are carried through untouched.
// The function is total: it never panics for any remote shape, and the
// result never aliases either input.
func Merge(defaults, remote map[string]any) map[string]any {
	if len(remote) == 0 {
		return Clone(defaults)
	}

	out := make(map[string]any, len(defaults)+len(remote))
	for key, def := range defaults {
		out[key] = mergeValue(def, remote[key])
	}
	for key, value := range remote {
		if _, known := defaults[key]; known {
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

func mergeValue(def, remote any) any {
	switch d := def.(type) {
	case map[string]any:
		r, ok := remote.(map[string]any)
		if !ok {
			return Clone(d)
		}
		return Merge(d, r)
	case []any:
		r, ok := remote.([]any)
		if !ok || len(r) == 0 {
			return cloneSlice(d)
		}
		return cloneSlice(r)
	default:
		if remote == nil {
			return def
		}
		switch remote.(type) {
		case map[string]any, []any:
			// Scalar default against a structured remote value is a shape
			// mismatch: keep the default.
			return def
		}
		return remote
	}
}

// Apply layers a partial write onto an existing document, mirroring
// merge-write semantics on the store side: nested maps merge recursively,
// scalars and arrays from the partial replace the existing value wholesale
// (including empty arrays). Keys absent from the partial are preserved.
func Apply(existing, partial map[string]any) map[string]any {
	out := Clone(existing)
	if out == nil {
		out = map[string]any{}
	}
	for key, value := range partial {
		current, ok := out[key].(map[string]any)
		incoming, nested := value.(map[string]any)
		if ok && nested {
			out[key] = Apply(current, incoming)
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Clone deep-copies a document so drafts never alias the merged view.
func Clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		return cloneSlice(v)
	default:
		return value
	}
}

func cloneSlice(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = cloneValue(v)
	}
	return out
}
