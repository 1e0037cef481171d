package config

import (
	"os"
	"path/filepath"
)

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mobilehub-session.json"
	}
	return filepath.Join(dir, "mobilehub", "session.json")
}
