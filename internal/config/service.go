package config

// ServiceConfig holds service-level settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	ClientURL string `yaml:"client_url"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}

// JWTConfig configures access-token validation. Token issuance is handled
// by the auth service; this server only verifies.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// S3Config configures the proof-shot and worksheet file store.
type S3Config struct {
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket_name"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
}

// PushConfig configures FCM delivery. When Enabled is false the sender is a
// no-op and notifications are persist-only.
type PushConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServerKey   string `yaml:"server_key"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ReminderConfig configures the daily reminder sweep.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled"`
	// Spec is a cron expression; default is 19:00 every day.
	Spec     string `yaml:"spec"`
	Timezone string `yaml:"timezone"`
}
