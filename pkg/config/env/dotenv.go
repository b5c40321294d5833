package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// PathVar overrides the default .env location.
const PathVar = "LABELEVAL_ENV_PATH"

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is only an error when the path was given
// explicitly through PathVar.
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv(PathVar)
	explicit := envPath != ""
	if !explicit {
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("loaded .env", "path", envPath)
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("skipping .env", "path", envPath)
		return nil
	}
	return err
}
