package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration.
type Config struct {
	ServerURL string
	Token     string
	Email     string
	StateDir  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BRAINBREAK_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("BRAINBREAK_TOKEN"),
		Email:     os.Getenv("BRAINBREAK_EMAIL"),
		StateDir:  getEnvOrDefault("BRAINBREAK_STATE_DIR", defaultStateDir()),
	}
}

// LoadSession fills in the token and email from the state dir when they were
// not provided via flag or env.
func (c *Config) LoadSession() error {
	if c.Token == "" {
		token, err := c.readStateFile("token")
		if err != nil {
			return err
		}
		c.Token = token
	}
	if c.Email == "" {
		email, err := c.readStateFile("email")
		if err != nil {
			return err
		}
		c.Email = email
	}
	return nil
}

// SaveSession persists the signed-in session for later commands.
func (c *Config) SaveSession(token, email string) error {
	c.Token = token
	c.Email = email

	if err := os.MkdirAll(c.StateDir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.StateDir, "token"), []byte(token), 0600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.StateDir, "email"), []byte(email), 0600)
}

func (c *Config) readStateFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.StateDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brainbreak"
	}
	return filepath.Join(home, ".brainbreak")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
