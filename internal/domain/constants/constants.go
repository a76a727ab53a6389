// Package constants holds identifiers shared across layers.
package constants

// Deployment environments.
const (
	EnvDevelop    = "development"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Rate limit stores.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)
