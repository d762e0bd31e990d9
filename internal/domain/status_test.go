package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"placed", StatusPlaced, false},
		{"ordered", StatusPlaced, false}, // legacy alias
		{"Ready", StatusReady, false},
		{" delivered ", StatusDelivered, false},
		{"cooking", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{"placed to ready", StatusPlaced, StatusReady, nil},
		{"ready to delivered", StatusReady, StatusDelivered, nil},
		{"repeat ready", StatusReady, StatusReady, ErrAlreadyInStatus},
		{"repeat delivered", StatusDelivered, StatusDelivered, ErrAlreadyInStatus},
		{"skip a stage", StatusPlaced, StatusDelivered, ErrInvalidTransition},
		{"backwards", StatusReady, StatusPlaced, ErrInvalidTransition},
		{"from terminal", StatusDelivered, StatusReady, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Transition(%s, %s) = %v, want nil", tt.from, tt.to, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Transition(%s, %s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestNext(t *testing.T) {
	if next, ok := StatusPlaced.Next(); !ok || next != StatusReady {
		t.Errorf("placed.Next() = %q, %v", next, ok)
	}
	if next, ok := StatusReady.Next(); !ok || next != StatusDelivered {
		t.Errorf("ready.Next() = %q, %v", next, ok)
	}
	if _, ok := StatusDelivered.Next(); ok {
		t.Error("delivered should be terminal")
	}
}
