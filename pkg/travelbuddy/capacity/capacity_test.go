package capacity

import "testing"

func TestIsFull(t *testing.T) {
	tests := []struct {
		seats, joins int
		want         bool
	}{
		{seats: 1, joins: 0, want: true},
		{seats: 2, joins: 0, want: false},
		{seats: 2, joins: 1, want: true},
		{seats: 3, joins: 1, want: false},
		{seats: 3, joins: 2, want: true},
		{seats: 3, joins: 5, want: true},
		{seats: 4, joins: 2, want: false},
	}

	for _, tt := range tests {
		if got := IsFull(tt.seats, tt.joins); got != tt.want {
			t.Errorf("IsFull(%d, %d) = %v, want %v", tt.seats, tt.joins, got, tt.want)
		}
	}
}

func TestParticipants(t *testing.T) {
	if got := Participants(2); got != 3 {
		t.Errorf("Expected 3 participants, got %d", got)
	}
}
