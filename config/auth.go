package config

import "time"

// AuthConfig groups token signing and revocation configuration.
//
// The two secrets are deliberately separate: a token signed with the user
// secret never verifies against the admin secret and vice versa, which is
// what keeps the role namespaces apart.
type AuthConfig struct {
	// UserTokenSecret signs tokens issued to user accounts.
	UserTokenSecret string `env:"USER_TOKEN_SECRET,required"`

	// AdminTokenSecret signs tokens issued to admin accounts.
	AdminTokenSecret string `env:"ADMIN_TOKEN_SECRET,required"`

	// TokenTTL is the fixed lifetime of issued tokens. Revocation entries
	// in redis expire on the same schedule.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// RevocationKeyPrefix namespaces blacklist keys in redis.
	RevocationKeyPrefix string `env:"REVOCATION_KEY_PREFIX" envDefault:"revoked:"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = time.Hour
	}
	if a.RevocationKeyPrefix == "" {
		a.RevocationKeyPrefix = "revoked:"
	}
}
