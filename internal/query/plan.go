package query

import (
	"fmt"
	"strings"
)

// Binding places a value at a 1-based positional slot.
type Binding struct {
	Position int
	Value    Value
}

// Plan is composed query text plus its positional bindings.
type Plan struct {
	Text     string
	Bindings []Binding
}

// NewPlan binds values to the placeholders of text in order.
func NewPlan(text string, values ...Value) Plan {
	return Plan{Text: text}.with("", values...)
}

// Placeholders counts the "?" markers in the text.
func (p Plan) Placeholders() int {
	return strings.Count(p.Text, "?")
}

// Args returns the driver arguments ordered by position. It fails when the
// bindings do not line up with the placeholders or a value is invalid.
func (p Plan) Args() ([]any, error) {
	if n := p.Placeholders(); n != len(p.Bindings) {
		return nil, fmt.Errorf("plan has %d placeholders and %d bindings", n, len(p.Bindings))
	}
	args := make([]any, len(p.Bindings))
	for _, b := range p.Bindings {
		if b.Position < 1 || b.Position > len(args) {
			return nil, fmt.Errorf("binding position %d out of range", b.Position)
		}
		if !b.Value.Valid() {
			return nil, fmt.Errorf("binding position %d has no supported value", b.Position)
		}
		if args[b.Position-1] != nil {
			return nil, fmt.Errorf("binding position %d bound twice", b.Position)
		}
		args[b.Position-1] = b.Value.Any()
	}
	return args, nil
}

func (p Plan) with(clause string, values ...Value) Plan {
	out := Plan{
		Text:     p.Text + clause,
		Bindings: make([]Binding, len(p.Bindings), len(p.Bindings)+len(values)),
	}
	copy(out.Bindings, p.Bindings)
	for _, v := range values {
		out.Bindings = append(out.Bindings, Binding{Position: len(out.Bindings) + 1, Value: v})
	}
	return out
}
