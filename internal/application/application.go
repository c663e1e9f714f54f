package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "memolist"

	// ConfigFileName is the INI file read from the application directory
	ConfigFileName = "config.ini"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the memolist configuration directory path.
// Linux: ~/.config/memolist (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\memolist (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// DefaultConfigPath returns the config.ini path inside the application directory.
func DefaultConfigPath() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ConfigFileName), nil
}

// DefaultDBPath returns the database file for a storage backend.
func DefaultDBPath(backend string) (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	ext := ".bolt"
	if backend == "sqlite" {
		ext = ".db"
	}

	return filepath.Join(dir, AppName+ext), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
