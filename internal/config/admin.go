package config

import "golang.org/x/crypto/bcrypt"

// AdminConfig controls the bootstrap admin credential.
type AdminConfig struct {
	DefaultPassword string
	BcryptCost      int
}

func loadAdmin() AdminConfig {
	cost := intEnvOrDefault(envAdminBcryptCost, defaultBcryptCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return AdminConfig{
		DefaultPassword: envOrDefault(envAdminPassword, defaultAdminPassword),
		BcryptCost:      cost,
	}
}
