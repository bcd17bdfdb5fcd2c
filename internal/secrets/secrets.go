// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials for the conversion service. Each
// secret is a plain-text file in a secrets directory named after its key;
// an environment variable, when set, takes precedence over the file.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// KeyServiceToken names the file holding the bearer token sent to the
// conversion service.
const KeyServiceToken = "service-token"

// envVars maps each known key to the environment variable that overrides it.
var envVars = map[string]string{
	KeyServiceToken: "PDF2TEXT_SERVICE_TOKEN",
}

// Load returns the known secrets found in dir, keyed by file name, with
// surrounding whitespace trimmed. Other files in dir are ignored. Missing
// or empty files are omitted; unreadable ones are logged and omitted.
func Load(dir string, log zerolog.Logger) (map[string]string, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("secrets path %s is not a directory", dir)
	}

	secrets := make(map[string]string, len(envVars))
	for key := range envVars {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("secret", key).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[key] = value
		}
	}
	return secrets, nil
}

// ServiceToken returns the service token from PDF2TEXT_SERVICE_TOKEN or,
// failing that, from dir. It returns "" when neither is set.
func ServiceToken(dir string, log zerolog.Logger) (string, error) {
	if tok := strings.TrimSpace(os.Getenv(envVars[KeyServiceToken])); tok != "" {
		log.Debug().Str("source", "env").Msg("using service token")
		return tok, nil
	}
	s, err := Load(dir, log)
	if err != nil {
		return "", err
	}
	return s[KeyServiceToken], nil
}
