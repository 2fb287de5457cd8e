package profile

import (
	"errors"
	"testing"
)

func TestNormalizeHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		expect  string
		wantErr bool
	}{
		{
			name:   "plain handle",
			input:  "alice",
			expect: "alice",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  valid-name_1  ",
			expect: "valid-name_1",
		},
		{
			name:    "rejects inner whitespace",
			input:   "bad user!",
			wantErr: true,
		},
		{
			name:    "rejects empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "rejects whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "rejects path traversal",
			input:   "../admin",
			wantErr: true,
		},
		{
			name:    "rejects unicode",
			input:   "héllo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeHandle(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHandle) {
					t.Fatalf("expected ErrInvalidHandle, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeHandleIdempotent(t *testing.T) {
	t.Parallel()

	once, err := NormalizeHandle("  some-user_42  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	twice, err := NormalizeHandle(once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}

	if once != twice {
		t.Fatalf("normalization not idempotent: %q vs %q", once, twice)
	}
}
