package hints

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeyboard(t *testing.T) {
	cases := []struct {
		name     string
		field    string
		value    any
		platform Platform
		expect   string
	}{
		{name: "numeric phone native", field: "phoneNumber", value: 5551234, platform: PlatformNative, expect: "phone-pad"},
		{name: "age web", field: "Age", value: 12, platform: PlatformWeb, expect: "numeric"},
		{name: "plain number decimal", field: "price", value: 9.99, platform: PlatformNative, expect: "decimal-pad"},
		{name: "email string", field: "workEmail", value: "", platform: PlatformWeb, expect: "email"},
		{name: "phone string", field: "phone", value: "", platform: PlatformWeb, expect: "tel"},
		{name: "uri string", field: "profileUri", value: "", platform: PlatformNative, expect: "url"},
		{name: "search string", field: "search", value: "", platform: PlatformNative, expect: "web-search"},
		{name: "bool default", field: "email", value: true, platform: PlatformWeb, expect: "text"},
		{name: "unknown platform falls back to web", field: "email", value: "", platform: "desktop", expect: "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Keyboard(tc.field, tc.value, tc.platform); got != tc.expect {
				t.Fatalf("Keyboard(%q) = %q, want %q", tc.field, got, tc.expect)
			}
		})
	}
}

func TestAutoCapitalize(t *testing.T) {
	cases := map[string]struct {
		value  any
		expect string
	}{
		"password":  {value: "", expect: CapitalizeNone},
		"firstName": {value: "", expect: CapitalizeWords},
		"website":   {value: "", expect: CapitalizeNone},
		"bio":       {value: "", expect: CapitalizeSentences},
		"name":      {value: 3, expect: CapitalizeSentences},
	}
	for field, tc := range cases {
		if got := AutoCapitalize(field, tc.value); got != tc.expect {
			t.Fatalf("AutoCapitalize(%q) = %q, want %q", field, got, tc.expect)
		}
	}
}

func TestInfer(t *testing.T) {
	got := Infer("email", "", Options{InferKeyboard: true, InferAutoCapitalize: true, Platform: PlatformNative})
	want := map[string]string{
		KeyKeyboardType:   "email-address",
		KeyAutoCapitalize: CapitalizeNone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hints mismatch (-want +got):\n%s", diff)
	}

	if got := Infer("email", "", Options{}); got != nil {
		t.Fatalf("expected nil hints when inference is disabled, got %v", got)
	}

	if diff := cmp.Diff([]string{KeyAutoCapitalize, KeyInputMode, KeyKeyboardType}, AllowedKeys()); diff != "" {
		t.Fatalf("allowed keys mismatch (-want +got):\n%s", diff)
	}
}
