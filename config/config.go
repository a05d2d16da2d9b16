package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

// IdentityLookupConfig points at the external document-identity service used
// to resolve visitors that are not in the local personnel registry.
type IdentityLookupConfig struct {
	BaseURL        string `mapstructure:"baseURL"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Mongo          MongoConfig          `mapstructure:"mongo"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	S3             S3Config             `mapstructure:"s3"`
	IdentityLookup IdentityLookupConfig `mapstructure:"identityLookup"`
	CORS           CORSConfig           `mapstructure:"cors"`
}

// LoadConfig reads config.yaml from path and overrides with env variables.
// A missing file is fine; env variables alone can configure the server.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("identityLookup.baseURL", "IDENTITY_LOOKUP_BASE_URL")
	viper.BindEnv("identityLookup.token", "IDENTITY_LOOKUP_TOKEN")
	viper.BindEnv("identityLookup.timeoutSeconds", "IDENTITY_LOOKUP_TIMEOUT_SECONDS")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.IdentityLookup.TimeoutSeconds <= 0 {
		config.IdentityLookup.TimeoutSeconds = 10
	}

	return
}
