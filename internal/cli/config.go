package cli

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	ClientID     string
	ClientIDFile string
	Nickname     string
	Output       string
	Verbose      bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("BANKIT_SERVER", "http://localhost:8080"),
		ClientID:     os.Getenv("BANKIT_CLIENT_ID"),
		ClientIDFile: getEnvOrDefault("BANKIT_CLIENT_ID_FILE", defaultClientIDFile()),
		Nickname:     os.Getenv("BANKIT_NICKNAME"),
		Output:       "text",
		Verbose:      false,
	}
}

// LoadClientID loads the persisted client ID, generating and saving a
// fresh one on first use. The client ID is this machine's identity
// across rooms; there are no accounts.
func (c *Config) LoadClientID() error {
	if c.ClientID != "" {
		return nil
	}

	data, err := os.ReadFile(c.ClientIDFile)
	if err == nil && len(data) > 0 {
		c.ClientID = string(data)
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	id, err := generateClientID()
	if err != nil {
		return err
	}
	c.ClientID = id

	dir := filepath.Dir(c.ClientIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.ClientIDFile, []byte(id), 0600)
}

func generateClientID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func defaultClientIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bankit/client_id"
	}
	return filepath.Join(home, ".bankit", "client_id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
