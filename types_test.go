package mdcard

import (
	"errors"
	"strings"
	"testing"
)

func TestWatermark_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		watermark *Watermark
		wantErr   error
	}{
		{name: "nil watermark", watermark: nil},
		{name: "empty text", watermark: &Watermark{}},
		{name: "default text", watermark: &Watermark{Text: DefaultWatermarkText}},
		{name: "max length in runes", watermark: &Watermark{Text: strings.Repeat("字", MaxWatermarkLength)}},
		{name: "too long", watermark: &Watermark{Text: strings.Repeat("a", MaxWatermarkLength+1)}, wantErr: ErrInvalidWatermark},
		{name: "newline rejected", watermark: &Watermark{Text: "a\nb"}, wantErr: ErrInvalidWatermark},
		{name: "tab rejected", watermark: &Watermark{Text: "a\tb"}, wantErr: ErrInvalidWatermark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.watermark.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWatermark_DisplayText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		watermark *Watermark
		want      string
	}{
		{name: "nil hides watermark", watermark: nil, want: ""},
		{name: "blank uses default", watermark: &Watermark{Text: "  "}, want: DefaultWatermarkText},
		{name: "text trimmed", watermark: &Watermark{Text: "  by me "}, want: "by me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.watermark.DisplayText(); got != tt.want {
				t.Errorf("DisplayText() = %q, want %q", got, tt.want)
			}
		})
	}
}
