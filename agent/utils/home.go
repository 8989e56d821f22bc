package utils

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// HomeDir returns the home directory of the current user.
func HomeDir() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	currentUser, err := user.Current()
	if err != nil {
		panic(err)
	}
	return currentUser.HomeDir
}

// ExpandHome replaces the leading ~ of the path with the home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}
