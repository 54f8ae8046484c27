package detect

import (
	"testing"
)

func TestCheckLightingStats(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		stats    Stats
		wantKind Kind
	}{
		{"well lit", Stats{Mean: 120, Std: 50}, ""},
		{"too dark", Stats{Mean: 20, Std: 50}, KindLighting},
		{"too bright", Stats{Mean: 230, Std: 50}, KindLighting},
		{"low contrast", Stats{Mean: 120, Std: 5}, KindLighting},
		{"exactly at brightness minimum", Stats{Mean: 30, Std: 50}, ""},
		{"exactly at brightness maximum", Stats{Mean: 200, Std: 50}, ""},
		{"exactly at contrast minimum", Stats{Mean: 120, Std: 15}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkLightingStats(cfg, tt.stats)
			if got != tt.stats {
				t.Errorf("expected stats to be returned unchanged")
			}
			if tt.wantKind == "" {
				if err != nil {
					t.Errorf("expected acceptance, got %v", err)
				}
				return
			}
			if !IsKind(err, tt.wantKind) {
				t.Errorf("expected kind %q, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestCheckLighting_DarkImage(t *testing.T) {
	cfg := DefaultConfig()
	data := encodeNoisePNG(t, 300, 300, 0, 10)

	_, err := CheckLighting(cfg, data)
	if !IsKind(err, KindLighting) {
		t.Errorf("expected lighting rejection for dark image, got %v", err)
	}
}

func TestCheckLighting_InvalidData(t *testing.T) {
	cfg := DefaultConfig()

	_, err := CheckLighting(cfg, []byte("garbage"))
	if !IsKind(err, KindValidation) {
		t.Errorf("expected validation error for undecodable data, got %v", err)
	}
}
