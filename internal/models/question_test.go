package models

import "testing"

func TestHasCorrectOption(t *testing.T) {
	testCases := []struct {
		name          string
		correctOption int
		expected      bool
	}{
		{"gradable question", 2, true},
		{"first option correct", 0, true},
		{"profiling question", NoCorrectOption, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &Question{CorrectOption: tc.correctOption}
			if got := q.HasCorrectOption(); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}
