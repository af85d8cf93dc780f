package field

// Props bundles what an input component needs to bind to a field.
type Props struct {
	Name string
	// ValueKey is the attribute the value is bound to, "value" unless
	// configured otherwise.
	ValueKey string
	Value    any
	OnChange Handler
	OnBlur   Handler
	// Hints holds inferred keyboard and capitalization hints.
	Hints map[string]string
}

// Map flattens the props into attribute form: name, the value under
// ValueKey, onChange, onBlur and every hint.
func (p Props) Map() map[string]any {
	out := make(map[string]any, 4+len(p.Hints))
	for key, value := range p.Hints {
		out[key] = value
	}
	out["name"] = p.Name
	key := p.ValueKey
	if key == "" {
		key = "value"
	}
	out[key] = p.Value
	out["onChange"] = p.OnChange
	out["onBlur"] = p.OnBlur
	return out
}
