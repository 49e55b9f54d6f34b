package redis

import "fmt"

const (
	// KeyPrefixSession is the prefix for editing session keys
	KeyPrefixSession = "forge:session:"
	// KeyPrefixArchive is the prefix for cached plugin archives
	KeyPrefixArchive = "forge:archive:"
	// KeyPrefixPreset is the prefix for preset keys
	KeyPrefixPreset = "forge:preset:"
	// KeyPrefixExports is the prefix for per-slug export counters
	KeyPrefixExports = "forge:exports:"
	// KeyAllPresets is the key for the set of all preset names
	KeyAllPresets = "forge:presets:all"
)

// SessionKey returns the Redis key for a session by ID
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// ArchiveKey returns the Redis key for an archive by configuration fingerprint
func ArchiveKey(fingerprint string) string {
	return KeyPrefixArchive + fingerprint
}

// PresetKey returns the Redis key for a preset
func PresetKey(name string) string {
	return KeyPrefixPreset + name
}

// ExportsKey returns the Redis key of the export counter of a plugin slug
func ExportsKey(slug string) string {
	return KeyPrefixExports + slug
}

// AllPresetsKey returns the key for the set of all preset names
func AllPresetsKey() string {
	return KeyAllPresets
}

// ExtractSessionID extracts the session ID from a Redis key
func ExtractSessionID(key string) (string, error) {
	if len(key) <= len(KeyPrefixSession) {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	return key[len(KeyPrefixSession):], nil
}
