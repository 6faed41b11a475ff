package config

// Config is the root configuration for scansec, serialised to
// ~/.scansec/config.json.
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"   json:"engine"`
	Clone    CloneConfig    `mapstructure:"clone"    json:"clone"`
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Server   ServerConfig   `mapstructure:"server"   json:"server"`
	Git      GitConfig      `mapstructure:"git"      json:"git"`
	Notify   NotifyConfig   `mapstructure:"notify"   json:"notify"`
}

// EngineConfig tunes the scan engine. Every knob here is policy the engine
// honours but never hardcodes.
type EngineConfig struct {
	// SizeLimitBytes is the largest file that will be matched (default 1 MiB).
	SizeLimitBytes int64 `mapstructure:"size_limit_bytes" json:"size_limit_bytes"`
	// ExcludedDirs are additional directory names to prune beyond the
	// builtin list (.git, node_modules, venv, ...).
	ExcludedDirs []string `mapstructure:"excluded_dirs" json:"excluded_dirs"`
	// Extensions overrides the extension→language table when non-empty,
	// e.g. {".py": "python"}.
	Extensions map[string]string `mapstructure:"extensions" json:"extensions"`
	// Workers is the scan worker pool size (0 = based on CPU count).
	Workers int `mapstructure:"workers" json:"workers"`
	// RulesDir holds custom rule YAML files loaded at startup.
	RulesDir string `mapstructure:"rules_dir" json:"rules_dir"`
}

// CloneConfig controls repository materialisation.
type CloneConfig struct {
	// TimeoutSeconds bounds a remote clone (default 300).
	TimeoutSeconds int `mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

// DatabaseConfig controls the scan history backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "mysql".
	Driver string `mapstructure:"driver" json:"driver"`
	// Path is the SQLite file path.
	Path string `mapstructure:"path" json:"path"`
	// DSN is the MySQL data source name (used when Driver == "mysql").
	DSN string `mapstructure:"dsn" json:"dsn"`
}

// ServerConfig controls the HTTP daemon.
type ServerConfig struct {
	// Port is the localhost port the API listens on (default 8480).
	Port int `mapstructure:"port" json:"port"`
	// ScheduleCron, when set with ScheduleRepos, rescans the listed
	// repositories on a cron schedule while the daemon runs.
	ScheduleCron  string   `mapstructure:"schedule_cron"  json:"schedule_cron"`
	ScheduleRepos []string `mapstructure:"schedule_repos" json:"schedule_repos"`
}

// GitConfig holds clone/API credentials per hosting platform.
type GitConfig struct {
	GitHubToken string `mapstructure:"github_token" json:"github_token"`
	GitLabToken string `mapstructure:"gitlab_token" json:"gitlab_token"`
}

// NotifyConfig controls scan-completion notifications.
type NotifyConfig struct {
	// WebhookURL receives a JSON payload after each completed scan when set.
	WebhookURL string `mapstructure:"webhook_url" json:"webhook_url"`
}
