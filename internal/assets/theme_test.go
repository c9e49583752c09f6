package assets

import (
	"errors"
	"testing"
)

func TestParseTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		data        string
		wantErr     error
		wantOpacity float64
	}{
		{
			name:        "minimal theme defaults opacity",
			data:        "name: Plain\nbackground: white\ntextColor: black\n",
			wantOpacity: 1,
		},
		{
			name:        "explicit opacity",
			data:        "name: Plain\nbackground: white\ntextColor: black\nopacity: 0.5\n",
			wantOpacity: 0.5,
		},
		{
			name:    "unknown field rejected",
			data:    "name: Plain\nbackground: white\ntextColor: black\ncolour: red\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "missing name",
			data:    "background: white\ntextColor: black\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "missing background",
			data:    "name: Plain\ntextColor: black\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "missing text color",
			data:    "name: Plain\nbackground: white\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "opacity above range",
			data:    "name: Plain\nbackground: white\ntextColor: black\nopacity: 1.5\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "negative opacity",
			data:    "name: Plain\nbackground: white\ntextColor: black\nopacity: -0.1\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "declaration breakout",
			data:    "name: Plain\nbackground: \"white; } body { display: none\"\ntextColor: black\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "style breakout",
			data:    "name: Plain\nbackground: white\ntextColor: \"</style>\"\n",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: ErrInvalidTheme,
		},
		{
			name:    "malformed YAML",
			data:    "name: [unclosed",
			wantErr: ErrInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTheme("plain", []byte(tt.data))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseTheme() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTheme() unexpected error: %v", err)
			}
			if got.ID != "plain" {
				t.Errorf("ParseTheme().ID = %q, want %q", got.ID, "plain")
			}
			if got.Opacity != tt.wantOpacity {
				t.Errorf("ParseTheme().Opacity = %g, want %g", got.Opacity, tt.wantOpacity)
			}
		})
	}
}
