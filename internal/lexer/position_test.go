package lexer

import (
	"testing"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{
			name:     "with filename",
			pos:      Position{Filename: "test.cm", Line: 42, Column: 15, Offset: 100},
			expected: "test.cm:42:15",
		},
		{
			name:     "without filename",
			pos:      Position{Line: 3, Column: 7},
			expected: "3:7",
		},
		{
			name:     "zero position",
			pos:      Position{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.pos.String()
			if result != tt.expected {
				t.Errorf("Position.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPosition_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"valid position", Position{Line: 1, Column: 1}, true},
		{"zero line", Position{Line: 0, Column: 1}, false},
		{"negative line", Position{Line: -1, Column: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.expected {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPosition_Ordering(t *testing.T) {
	a := Position{Line: 1, Column: 1, Offset: 0}
	b := Position{Line: 2, Column: 4, Offset: 12}

	if !a.Before(b) {
		t.Error("expected a.Before(b)")
	}
	if a.After(b) {
		t.Error("expected !a.After(b)")
	}
	if !b.After(a) {
		t.Error("expected b.After(a)")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a position is neither before nor after itself")
	}
}
