package common

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the karaoke home directory when set.
const HomeEnv = "KARAOKE_HOME"

// HomeDir returns the karaoke home directory ($KARAOKE_HOME or ~/.karaoke).
func HomeDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".karaoke")
}
