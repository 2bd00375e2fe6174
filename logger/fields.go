package logger

// Masked is satisfied by every secure wrapper type. Declared here so the
// logger does not depend on the secure package.
type Masked interface {
	PartialView() string
}

// Redact maps a value to its log-safe form: the tier-masked view for secure
// wrappers, the value unchanged otherwise. Use it when a field might hold a
// raw string that never went through wrapper construction.
func Redact(v any) any {
	if m, ok := v.(Masked); ok {
		return m.PartialView()
	}
	return v
}

// RedactFields applies Redact to every value of a field map, returning a
// new map.
func RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = Redact(v)
	}
	return out
}
