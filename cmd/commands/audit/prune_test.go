package audit

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30d", want: 30 * 24 * time.Hour},
		{input: "1d", want: 24 * time.Hour},
		{input: "0d", want: 0},
		{input: "72h", want: 72 * time.Hour},
		{input: "90m", want: 90 * time.Minute},
		{input: "-1d", wantErr: true},
		{input: "-72h", wantErr: true},
		{input: "xd", wantErr: true},
		{input: "", wantErr: true},
		{input: "30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDuration(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDuration(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
