package config

import "os"

// SFTPConfig holds the connection settings for the remote image host.
type SFTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	RemoteBasePath string
	// Public domain the uploaded files are served from. When empty it is
	// derived from the last path segment of RemoteBasePath (e.g.
	// /var/www/example.com/images -> example.com).
	WebDomain string
}

func LoadSFTPConfig() SFTPConfig {
	return SFTPConfig{
		Host:           os.Getenv("SFTP_HOST"),
		Port:           getEnvInt("SFTP_PORT", 22),
		Username:       os.Getenv("SFTP_USER"),
		Password:       os.Getenv("SFTP_PASS"),
		RemoteBasePath: getEnvDefault("SFTP_REMOTE_BASE", "/images"),
		WebDomain:      os.Getenv("SFTP_WEB_DOMAIN"),
	}
}
