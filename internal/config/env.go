package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides cfg from TODO_* environment variables.
// Unset or unparsable values leave the field alone.
func ApplyEnv(cfg *Config) {
	if val := os.Getenv("TODO_DATA_FILE"); val != "" {
		cfg.DataFile = val
	}
	if val := os.Getenv("TODO_DATE_FORMAT"); val != "" {
		cfg.DateFormat = val
	}
	if val := os.Getenv("TODO_BACKUP_DIR"); val != "" {
		cfg.BackupDir = val
	}
	if val, ok := getEnvBool("TODO_AUTO_SAVE"); ok {
		cfg.AutoSaveOnExit = val
	}
	if val, ok := getEnvBool("TODO_NO_COLOR"); ok {
		cfg.UI.NoColor = val
	}
	if val := getEnvInt("TODO_DESCRIPTION_WIDTH"); val > 0 {
		cfg.UI.DescriptionWidth = val
	}
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
