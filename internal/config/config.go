package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	Audit    AuditConfig
	Client   ClientConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint                string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName              string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey               string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey               string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL                  bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	UploadPresignDefault    time.Duration `envconfig:"MINIO_UPLOAD_PRESIGN_DEFAULT" default:"1h"`
	UploadPresignCeiling    time.Duration `envconfig:"MINIO_UPLOAD_PRESIGN_CEILING" default:"24h"`
	DownloadPresignDuration time.Duration `envconfig:"MINIO_DOWNLOAD_PRESIGN_DURATION" default:"24h"`
	PlayPresignDuration     time.Duration `envconfig:"MINIO_PLAY_PRESIGN_DURATION" default:"168h"`
}

type UploadConfig struct {
	MaxObjectSize int64 `envconfig:"UPLOAD_MAX_OBJECT_SIZE" default:"53687091200"` // 50GB
	PartSize      int64 `envconfig:"UPLOAD_PART_SIZE" default:"10485760"`          // 10MB
	MaxNameLength int   `envconfig:"UPLOAD_MAX_NAME_LENGTH" default:"100"`
}

type AuditConfig struct {
	Threshold    time.Duration `envconfig:"AUDIT_THRESHOLD" default:"24h"`
	SignDuration time.Duration `envconfig:"AUDIT_SIGN_DURATION" default:"168h"`
	BatchSize    int           `envconfig:"AUDIT_BATCH_SIZE" default:"10"`
	BatchPause   time.Duration `envconfig:"AUDIT_BATCH_PAUSE" default:"500ms"`
	RefreshEvery time.Duration `envconfig:"AUDIT_REFRESH_EVERY" default:"6h"`
}

type ClientConfig struct {
	APIBaseURL    string        `envconfig:"CLIENT_API_BASE_URL" default:"http://localhost:8080"`
	MaxConcurrent int           `envconfig:"CLIENT_MAX_CONCURRENT" default:"3"`
	HTTPTimeout   time.Duration `envconfig:"CLIENT_HTTP_TIMEOUT" default:"0"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	Subject      string `envconfig:"NATS_SUBJECT" required:"true"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadClient loads only the client-side settings, so the uploader CLI can
// run without the server's required environment.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
