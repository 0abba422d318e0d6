package dnd

import "maps"

// Payload identifies what is being dragged. It is immutable once built.
type Payload struct {
	ID     string
	fields map[string]any
}

func NewPayload(id string, fields map[string]any) Payload {
	p := Payload{ID: id}
	if len(fields) > 0 {
		p.fields = maps.Clone(fields)
	}
	return p
}

func (p Payload) Field(k string) (any, bool) {
	v, ok := p.fields[k]
	return v, ok
}

// String returns the string field k, or "" if it is missing or not a string.
func (p Payload) String(k string) string {
	s, _ := p.fields[k].(string)
	return s
}

func (p Payload) IsZero() bool { return p.ID == "" && len(p.fields) == 0 }
