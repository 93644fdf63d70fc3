package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSelectVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions string
		order    Order
		want     string
		wantOK   bool
	}{
		{
			name:     "first non-dev in document order",
			versions: `{"dev-main": {}, "2.x-dev": {}, "v1.9.0": {}, "v2.0.0": {}}`,
			order:    OrderDocument,
			want:     "v1.9.0",
			wantOK:   true,
		},
		{
			name:     "falls back to first when all dev",
			versions: `{"dev-main": {}, "dev-feature": {}}`,
			order:    OrderDocument,
			want:     "dev-main",
			wantOK:   true,
		},
		{
			name:     "semver picks highest stable",
			versions: `{"dev-main": {}, "v1.9.0": {}, "v2.0.0": {}, "v1.10.0": {}}`,
			order:    OrderSemver,
			want:     "v2.0.0",
			wantOK:   true,
		},
		{
			name:     "semver prefers release over prerelease",
			versions: `{"3.0.0-beta1": {}, "3.0.0": {}}`,
			order:    OrderSemver,
			want:     "3.0.0",
			wantOK:   true,
		},
		{
			name:     "semver fallback is first unparseable in document order",
			versions: `{"dev-main": {}, "dev-next": {}}`,
			order:    OrderSemver,
			want:     "dev-main",
			wantOK:   true,
		},
		{
			name:     "empty mapping",
			versions: `{}`,
			order:    OrderDocument,
		},
		{
			name:     "not an object",
			versions: `[]`,
			order:    OrderDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVersion(gjson.Parse(tt.versions), tt.order)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestSelectVersionManifest(t *testing.T) {
	versions := gjson.Parse(`{
		"dev-main": {"require": {"ext-intl": "*"}},
		"v6.4.1": {"require": {"php": ">=8.1", "ext-ctype": "*"}}
	}`)

	v, ok := SelectVersion(versions, OrderDocument)
	require.True(t, ok)

	req := Extract(v.Manifest)
	assert.Equal(t, ">=8.1", req.Runtime)
	assert.Equal(t, []string{"ctype"}, req.Extensions)
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment("dev-master"))
	assert.True(t, IsDevelopment("3.x-DEV"))
	assert.False(t, IsDevelopment("v3.1.0"))
	assert.False(t, IsDevelopment("1.0.0-RC1"))
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"", OrderDocument, false},
		{"document", OrderDocument, false},
		{"SemVer", OrderSemver, false},
		{"date", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseOrder(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseOrder(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
