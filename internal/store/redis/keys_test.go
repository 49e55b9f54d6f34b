package redis

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"session", SessionKey("abc"), "forge:session:abc"},
		{"archive", ArchiveKey("f00d"), "forge:archive:f00d"},
		{"preset", PresetKey("dark"), "forge:preset:dark"},
		{"exports", ExportsKey("smart-countdown-timer"), "forge:exports:smart-countdown-timer"},
		{"all presets", AllPresetsKey(), "forge:presets:all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("key = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestExtractSessionID(t *testing.T) {
	id, err := ExtractSessionID(SessionKey("0b7e"))
	if err != nil {
		t.Fatalf("ExtractSessionID() error = %v", err)
	}
	if id != "0b7e" {
		t.Errorf("ExtractSessionID() = %q, want %q", id, "0b7e")
	}

	if _, err := ExtractSessionID(KeyPrefixSession); err == nil {
		t.Error("ExtractSessionID() on a bare prefix should fail")
	}
}
