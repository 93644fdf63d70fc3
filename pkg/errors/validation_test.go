package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid composer", "symfony/console", false},
		{"valid with dash", "guzzlehttp/guzzle-services", false},
		{"valid with dot", "my.vendor/pkg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"query", "foo/bar?x=1", true},
		{"fragment", "foo/bar#x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateComposerPackageName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"symfony/console", false},
		{"Laravel/Framework", false},
		{"doctrine/dbal", false},
		{"php-http/message-factory", false},
		{"monolog", true},
		{"vendor/", true},
		{"/pkg", true},
		{"a/b/c", true},
		{"vendor/pkg name", true},
	}

	for _, tt := range tests {
		err := ValidateComposerPackageName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateComposerPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://packagist.org/explore/popular.json", false},
		{"http://localhost:8080/x.json", false},
		{"", true},
		{"ftp://example.com/composer.json", true},
		{"packagist.org", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPackage,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeHTTPStatus,
		ErrCodeDecode,
		ErrCodeDiscovery,
		ErrCodeFatalIO,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
