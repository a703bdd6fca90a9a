package config

import "time"

type AuthConfig struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Bootstrap BootstrapConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       []string
}

type PasswordConfig struct {
	BcryptCost int
}

// BootstrapConfig describes the admin account created on an empty store.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 12*time.Hour),
			Issuer:         getEnv("JWT_ISSUER", "hrms"),
			Audience:       getEnvStringSlice("JWT_AUDIENCE", []string{"hrms-api"}),
		},
		Password: PasswordConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
			AdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
		},
	}
}
