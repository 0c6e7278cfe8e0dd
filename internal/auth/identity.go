package auth

// Provider identifies a supported external identity provider. The set is
// closed: adding a provider means adding a catalog entry and a profile
// decoder, not registering something at runtime.
type Provider string

const (
	ProviderDiscord Provider = "discord"
	ProviderGoogle  Provider = "google"
)

// ParseProvider matches s against the known provider tags. Matching is
// exact and case-sensitive, no normalization.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(s) {
	case ProviderDiscord, ProviderGoogle:
		return Provider(s), true
	default:
		return "", false
	}
}

// Identity is the canonical profile extracted from a provider's profile
// response. It contains facts only, no decisions.
type Identity struct {
	Provider         Provider
	ProviderID       string // provider-issued subject identifier, join key for lookup
	ProviderUsername string // display name, empty when the provider exposes none
}
