package loader_test

import (
	"testing"

	"mvcs-loader/core/loader"

	"github.com/stretchr/testify/assert"
)

// stubHost is a fixed hook/config view.
type stubHost struct {
	hooks  map[string]string
	enable map[string]*bool
}

func (h *stubHost) HookConfigKey(name string) (string, bool) {
	key, ok := h.hooks[name]
	return key, ok && key != ""
}

func (h *stubHost) BundleEnabled(key string) (bool, bool) {
	v, ok := h.enable[key]
	if !ok || v == nil {
		return false, false
	}
	return *v, true
}

func boolPtr(b bool) *bool { return &b }

func TestResolveEnabled(t *testing.T) {
	tests := []struct {
		name string
		host loader.Host
		want bool
	}{
		{"Nil host", nil, true},
		{"No hook entry", &stubHost{}, true},
		{"Hook without config key", &stubHost{hooks: map[string]string{"foo": ""}}, true},
		{"Config object missing", &stubHost{hooks: map[string]string{"foo": "fooCfg"}}, true},
		{
			"Enable unset",
			&stubHost{hooks: map[string]string{"foo": "fooCfg"}, enable: map[string]*bool{"fooCfg": nil}},
			true,
		},
		{
			"Explicitly disabled",
			&stubHost{hooks: map[string]string{"foo": "fooCfg"}, enable: map[string]*bool{"fooCfg": boolPtr(false)}},
			false,
		},
		{
			"Explicitly enabled",
			&stubHost{hooks: map[string]string{"foo": "fooCfg"}, enable: map[string]*bool{"fooCfg": boolPtr(true)}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loader.ResolveEnabled(tt.host, "foo"))
		})
	}
}
