// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads NCBI credentials from a directory of plain-text files
// and from a dotenv file. In the directory, each file is one secret: the
// filename is the key name and the trimmed contents are the value.
//
// Supported key files: ncbi-api-key, ncbi-email.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key file names under the secrets directory.
const (
	APIKeyFile = "ncbi-api-key"
	EmailFile  = "ncbi-email"
)

// Variable names read from a dotenv file.
const (
	APIKeyEnv = "NCBI_API_KEY"
	EmailEnv  = "NCBI_EMAIL"
)

// Credentials are the optional values sent with every E-utilities request.
type Credentials struct {
	APIKey string
	Email  string
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on warn but do not abort.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if warn == nil {
		warn = io.Discard
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotenv parses the dotenv file at path without touching the process
// environment. A missing file yields an empty map.
func LoadDotenv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	for k, v := range vars {
		vars[k] = strings.TrimSpace(v)
	}
	return vars, nil
}

// Resolve fills the empty fields of c, first from the secrets directory and
// then from the dotenv file. Values already set on c are kept.
func Resolve(c Credentials, dir, dotenv string, warn io.Writer) (Credentials, error) {
	files, err := Load(dir, warn)
	if err != nil {
		return c, err
	}
	env, err := LoadDotenv(dotenv)
	if err != nil {
		return c, err
	}

	c.APIKey = first(c.APIKey, files[APIKeyFile], env[APIKeyEnv])
	c.Email = first(c.Email, files[EmailFile], env[EmailEnv])
	return c, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
