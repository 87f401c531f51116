package cli

// Options are the settings shared by every wayfinder command.
type Options struct {
	// Sources are path configuration files or http(s) URLs, applied in order.
	Sources []string
	// Start is the navigator start location; its host decides what stays in-app.
	Start string
	Name  string
	// Redis is the address of a Redis server caching remote documents.
	// Empty means an in-memory cache.
	Redis string
	// CacheKey is a base64 AES-256 key encrypting cached documents.
	CacheKey          string
	MatchQueryStrings bool
	Debug             bool
	JSON              bool
}
