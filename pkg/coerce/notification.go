package coerce

// Notification is one of WebEvent, NativeEvent, EmptyEvent or Raw.
type Notification interface {
	notification()
}

// Target mirrors the parts of a web input element a change event carries.
// Value and Checked are pointers so an absent key can be told apart from an
// empty one.
type Target struct {
	Value   *string `json:"value,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
	Type    string  `json:"type,omitempty"`
}

// WebEvent is a synthetic input change event.
type WebEvent struct {
	Target *Target `json:"target,omitempty"`
}

// NativeText is the payload of a native text input change.
type NativeText struct {
	Text string `json:"text"`
}

// NativeEvent is a native text input change event.
type NativeEvent struct {
	Native *NativeText `json:"nativeEvent,omitempty"`
}

// EmptyEvent is an inert event carrying neither a target nor a native
// payload, typically a blur fired without input.
type EmptyEvent struct{}

// Raw carries the new value directly.
type Raw[T any] struct {
	Value T
}

func (WebEvent) notification()    {}
func (NativeEvent) notification() {}
func (EmptyEvent) notification()  {}
func (Raw[T]) notification()      {}

// Input builds a web event for a text-like input.
func Input(inputType, value string) WebEvent {
	return WebEvent{Target: &Target{Type: inputType, Value: &value}}
}

// Check builds a web event for a checkbox or radio input.
func Check(inputType string, checked bool) WebEvent {
	return WebEvent{Target: &Target{Type: inputType, Checked: &checked}}
}

// Text builds a native text event.
func Text(text string) NativeEvent {
	return NativeEvent{Native: &NativeText{Text: text}}
}

// Value wraps v as a Raw notification.
func Value[T any](v T) Raw[T] {
	return Raw[T]{Value: v}
}

// rawValue lets Extract read a Raw[T] without knowing T.
type rawValue interface {
	rawAny() any
}

func (r Raw[T]) rawAny() any { return r.Value }
