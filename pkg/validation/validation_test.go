package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid email with subdomain", "user@mail.example.com", false},
		{"empty email", "", true},
		{"invalid format", "invalid-email", true},
		{"missing @", "userexample.com", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", true},
		{"valid with plus", "user+tag@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "secret123", false},
		{"minimum length", "123456", false},
		{"too short", "12345", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateContentID(t *testing.T) {
	tests := []struct {
		name      string
		contentID string
		wantErr   bool
	}{
		{"valid content id", "lesson-42", false},
		{"valid with underscore", "lesson_42", false},
		{"alphanumeric", "abc123", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 101), true},
		{"path traversal", "../etc/passwd", true},
		{"slash", "lessons/42", true},
		{"spaces", "lesson 42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContentID(tt.contentID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContentID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStreamToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid hex token", "deadbeef0123456789abcdef", false},
		{"empty", "", true},
		{"uppercase hex rejected", "DEADBEEF", true},
		{"non-hex chars", "not-a-token!", true},
		{"too long", strings.Repeat("ab", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStreamToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStreamToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonEmptyString(t *testing.T) {
	if err := ValidateNonEmptyString("  ", "name"); err == nil {
		t.Error("expected error for whitespace-only string")
	}
	if err := ValidateNonEmptyString("ok", "name"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateStringLength(t *testing.T) {
	if err := ValidateStringLength("abc", 1, 5, "field"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateStringLength("", 1, 5, "field"); err == nil {
		t.Error("expected error for too-short string")
	}
	if err := ValidateStringLength("abcdef", 1, 5, "field"); err == nil {
		t.Error("expected error for too-long string")
	}
}
