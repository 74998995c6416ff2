package domain

// MessageResolver renders an error key as display text.
type MessageResolver interface {
	Resolve(key ErrorKey) string
}

// RenderErrors resolves keys in order.
func RenderErrors(r MessageResolver, keys []ErrorKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.Resolve(k))
	}
	return out
}
