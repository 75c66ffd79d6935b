// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (SPONDON_*), configuration
// files, or command-line flags (loaded in LoadConfig). They represent
// *app-level* configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// The validate tags are checked in ValidateConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string `validate:"required" label:"mongo_uri"`
	MongoDatabase    string `validate:"required" label:"mongo_database"`
	MongoMaxPoolSize uint64 `validate:"gte=1" label:"mongo_max_pool_size"`
	MongoMinPoolSize uint64 `validate:"ltefield=MongoMaxPoolSize" label:"mongo_min_pool_size"`

	// Origins allowed by CORS; "*" allows any.
	CORSAllowedOrigins []string `validate:"min=1" label:"cors_allowed_origins"`

	// How often stranded approvals are cleaned up; 0 disables the worker.
	ReconcileInterval time.Duration `validate:"gte=0s" label:"reconcile_interval"`

	// Per-operation timeouts (see system/timeouts).
	TimeoutShort  time.Duration `validate:"gte=0s" label:"timeout_short"`
	TimeoutMedium time.Duration `validate:"gte=0s" label:"timeout_medium"`
	TimeoutLong   time.Duration `validate:"gte=0s" label:"timeout_long"`
}
