package template

import (
	"reflect"
	"testing"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "typical template",
			text: "Patient: {patient_identifier}\nChief Complaint: {chief_complaint}",
			want: []string{"patient_identifier", "chief_complaint"},
		},
		{
			name: "duplicates collapse",
			text: "{chief_complaint} and again {chief_complaint}",
			want: []string{"chief_complaint"},
		},
		{
			name: "no placeholders",
			text: "plain text only",
			want: nil,
		},
		{
			name: "ignores double-brace and empty markers",
			text: "{} {not valid} {signs_symptoms}",
			want: []string{"signs_symptoms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Placeholders(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Placeholders(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
