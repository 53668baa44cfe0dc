package parser

import (
	"errors"
	"math"
	"testing"
)

// TestValidateCoordinate tests coordinate validation
func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid", 42.35, -71.05, false},
		{"lat max boundary", 90.0, 0.0, false},
		{"lat min boundary", -90.0, 0.0, false},
		{"lon max boundary", 0.0, 180.0, false},
		{"lon min boundary", 0.0, -180.0, false},
		{"lat too high", 90.1, 0.0, true},
		{"lat too low", -90.1, 0.0, true},
		{"lon too high", 0.0, 180.1, true},
		{"lon too low", 0.0, -180.1, true},
		{"nan", math.NaN(), 0.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBox(t *testing.T) {
	tests := []struct {
		name                     string
		south, north, west, east float64
		wantBoxErr               bool
		wantCoordErr             bool
	}{
		{"valid", 0, 10, 0, 10, false, false},
		{"degenerate line", 5, 5, 0, 10, false, false},
		{"inverted lat", 10, 0, 0, 10, true, false},
		{"inverted lon", 0, 10, 10, 0, true, false},
		{"out of range", 0, 95, 0, 10, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBox(tt.south, tt.north, tt.west, tt.east)

			var boxErr *ErrInvalidBox
			if got := errors.As(err, &boxErr); got != tt.wantBoxErr {
				t.Errorf("Expected ErrInvalidBox=%v, got err=%v", tt.wantBoxErr, err)
			}
			var coordErr *ErrInvalidCoordinate
			if got := errors.As(err, &coordErr); got != tt.wantCoordErr {
				t.Errorf("Expected ErrInvalidCoordinate=%v, got err=%v", tt.wantCoordErr, err)
			}
		})
	}
}

func TestValidateQuad(t *testing.T) {
	valid := [][]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if err := ValidateQuad(valid); err != nil {
		t.Errorf("Expected valid quad, got %v", err)
	}

	if err := ValidateQuad(valid[:3]); err == nil {
		t.Error("Expected error for 3-corner quad")
	}

	bad := [][]float64{{0, 0}, {10, 0}, {10, 100}, {0, 10}}
	err := ValidateQuad(bad)
	var coordErr *ErrInvalidCoordinate
	if !errors.As(err, &coordErr) {
		t.Fatalf("Expected wrapped ErrInvalidCoordinate, got %v", err)
	}
	if coordErr.Lat != 100 {
		t.Errorf("Expected Lat=100, got %f", coordErr.Lat)
	}
}
