package manifest

import (
	"errors"
	"testing"

	"assetloader/internal/model"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantUnits int
		wantErr   bool
	}{
		{
			name:      "valid graph",
			data:      `{"units": {"A": ["B"], "B": []}}`,
			wantUnits: 2,
		},
		{
			name:      "single unit",
			data:      `{"units": {"only": []}}`,
			wantUnits: 1,
		},
		{
			name:    "invalid json",
			data:    `{"units": `,
			wantErr: true,
		},
		{
			name:    "no units",
			data:    `{"units": {}}`,
			wantErr: true,
		},
		{
			name:    "empty document",
			data:    `{}`,
			wantErr: true,
		},
		{
			name:    "undeclared dependency",
			data:    `{"units": {"A": ["ghost"]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.data))

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, model.ErrMalformedManifest) {
					t.Errorf("error %v should wrap ErrMalformedManifest", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.UnitCount() != tt.wantUnits {
				t.Errorf("UnitCount() = %d, want %d", m.UnitCount(), tt.wantUnits)
			}
		})
	}
}
