package storage

import "testing"

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"versioned", "https://res.cloudinary.com/demo/image/upload/v1712/charity/covers/1-food.webp", "charity/covers/1-food"},
		{"unversioned", "https://res.cloudinary.com/demo/image/upload/covers/a.png", "covers/a"},
		{"folder named like a version prefix", "https://res.cloudinary.com/demo/image/upload/volunteers/b.jpg", "volunteers/b"},
		{"not cloudinary", "https://example.com/a.png", ""},
		{"nothing after upload", "https://res.cloudinary.com/demo/image/upload", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPublicID(tt.url); got != tt.want {
				t.Errorf("ExtractPublicID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNewCloudinaryStorageRequiresURL(t *testing.T) {
	if _, err := NewCloudinaryStorage("", "", ""); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
