package parser

import (
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantName   string
		wantParent string
		wantEndian string
		wantErr    bool
	}{
		{"name only", "Header", "Header", "", "", false},
		{"parent", "Msg : Header", "Msg", "Header", "", false},
		{"parent no spaces", "Msg:Header", "Msg", "Header", "", false},
		{"parent and endian", "Msg : Header endian=big", "Msg", "Header", "big", false},
		{"endian only", "Record endian=native", "Record", "", "native", false},
		{"surrounding space", "  Record   endian=le ", "Record", "", "le", false},

		{"empty", "", "", "", "", true},
		{"missing parent", "Msg :", "", "", "", true},
		{"bare word", "Msg Header", "", "", "", true},
		{"unknown endian", "Msg endian=middle", "", "", "", true},
		{"unknown parameter", "Msg size=8", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader(tt.text)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHeader(%q) expected error, got nil", tt.text)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseHeader(%q) unexpected error: %v", tt.text, err)
			}

			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Parent != tt.wantParent {
				t.Errorf("Parent = %q, want %q", got.Parent, tt.wantParent)
			}
			if got.Endian != tt.wantEndian {
				t.Errorf("Endian = %q, want %q", got.Endian, tt.wantEndian)
			}
		})
	}
}
