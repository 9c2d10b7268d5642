package config

import (
	"encoding/json"
	"os"

	"github.com/myhome-soft/myhome/internal/flagx"
	"github.com/myhome-soft/myhome/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Duration fields
// accept either "24h"-style strings or integer nanoseconds.
type JsonConfig struct {
	Env          string `json:"env"`
	EndpointAddr string `json:"endpoint_addr"`
	DatabaseDSN  string `json:"database_dsn"`

	TokenSecret                string         `json:"token_secret"`
	TokenExpiration            timex.Duration `json:"token_expiration"`
	EmailConfirmTokenLifetime  timex.Duration `json:"email_confirm_token_lifetime"`
	PasswordResetTokenLifetime timex.Duration `json:"password_reset_token_lifetime"`
	AuthHeaderName             string         `json:"auth_header_name"`
	AuthHeaderPrefix           string         `json:"auth_header_prefix"`

	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
	MailFrom     string `json:"mail_from"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays config with values from the JSON file given via -c or
// -config. Missing flag means nothing is loaded; an unreadable or invalid
// file panics since the process cannot start half-configured. Zero-valued
// JSON fields are left at their current (default) values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIfNotEmpty(&config.Env, c.Env)
	setIfNotEmpty(&config.EndpointAddr, c.EndpointAddr)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.TokenSecret, c.TokenSecret)
	if c.TokenExpiration.Duration != 0 {
		config.TokenExpiration = c.TokenExpiration.Duration
	}
	if c.EmailConfirmTokenLifetime.Duration != 0 {
		config.EmailConfirmTokenLifetime = c.EmailConfirmTokenLifetime.Duration
	}
	if c.PasswordResetTokenLifetime.Duration != 0 {
		config.PasswordResetTokenLifetime = c.PasswordResetTokenLifetime.Duration
	}
	setIfNotEmpty(&config.AuthHeaderName, c.AuthHeaderName)
	setIfNotEmpty(&config.AuthHeaderPrefix, c.AuthHeaderPrefix)
	setIfNotEmpty(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	setIfNotEmpty(&config.SMTPUser, c.SMTPUser)
	setIfNotEmpty(&config.SMTPPassword, c.SMTPPassword)
	setIfNotEmpty(&config.MailFrom, c.MailFrom)
	setIfNotEmpty(&config.S3RootUser, c.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, c.S3RootPassword)
	setIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	setIfNotEmpty(&config.S3Region, c.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
