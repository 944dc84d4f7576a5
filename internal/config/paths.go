package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".reviewdesk"

// DataDir returns the base data directory for reviewdesk.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

func dataFile(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}

// CoreConfigPath returns the path to the TOML configuration file.
func CoreConfigPath() (string, error) {
	return dataFile("config.toml")
}

// TokenPath returns the default path of the anti-forgery token file.
func TokenPath() (string, error) {
	return dataFile("token")
}

// PreferencesDBPath returns the path of the bbolt preferences database.
func PreferencesDBPath() (string, error) {
	return dataFile("preferences.db")
}

// PreferencesFilePath returns the path of the JSON preferences file.
func PreferencesFilePath() (string, error) {
	return dataFile("preferences.json")
}

// UILogPath returns the path the terminal UI logs to.
func UILogPath() (string, error) {
	return dataFile("ui.log")
}
