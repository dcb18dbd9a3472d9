package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	ServerPort string
	JwtSecret  string
	Issuer     string

	// AdminPassword is the single shared credential; the builder has no
	// user accounts. AuthDisabled skips the JWT middleware entirely for
	// local single-user use.
	AdminPassword string
	AuthDisabled  bool

	// StorageBackend selects where the saved-form collection lives:
	// "postgres" or "file".
	StorageBackend string
	DataFile       string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	BackupEnabled  bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "formforge")

	AdminPassword = getEnv("ADMIN_PASSWORD", "admin")
	AuthDisabled, _ = strconv.ParseBool(getEnv("AUTH_DISABLED", "false"))

	StorageBackend = getEnv("STORAGE_BACKEND", "postgres")
	DataFile = getEnv("DATA_FILE", defaultDataFile())

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formforge")

	BackupEnabled, _ = strconv.ParseBool(getEnv("BACKUP_ENABLED", "false"))
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	MinioBucket = getEnv("MINIO_BUCKET", "formforge-backups")
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "forms.json"
	}
	return filepath.Join(home, ".formforge", "forms.json")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
