// config/config.go
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

type RatesConfig struct {
	BaseURL string `mapstructure:"baseURL"`
	APIKey  string `mapstructure:"apiKey"`
}

type ESignConfig struct {
	BaseURL        string `mapstructure:"baseURL"`
	OAuthBaseURL   string `mapstructure:"oauthBaseURL"`
	IntegrationKey string `mapstructure:"integrationKey"`
	UserID         string `mapstructure:"userID"`
	AccountID      string `mapstructure:"accountID"`
	PrivateKey     string `mapstructure:"privateKey"`
}

type GeoConfig struct {
	BaseURL string `mapstructure:"baseURL"`
	APIKey  string `mapstructure:"apiKey"`
}

type DocumentsConfig struct {
	TemplatesDir  string `mapstructure:"templatesDir"`
	AdminEmail    string `mapstructure:"adminEmail"`
	CustomerEmail string `mapstructure:"customerEmail"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	S3        S3Config        `mapstructure:"s3"`
	Rates     RatesConfig     `mapstructure:"rates"`
	ESign     ESignConfig     `mapstructure:"esign"`
	Geo       GeoConfig       `mapstructure:"geo"`
	Documents DocumentsConfig `mapstructure:"documents"`
}

// LoadConfig reads configuration from the config file and overrides it
// with environment variables. A missing file is not an error; env vars
// alone are enough to run the server.
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
	viper.BindEnv("rates.baseURL", "REACHSHIP_BASE_URL")
	viper.BindEnv("rates.apiKey", "REACHSHIP_API_KEY")
	viper.BindEnv("esign.baseURL", "DOCUSIGN_BASE_PATH")
	viper.BindEnv("esign.oauthBaseURL", "DOCUSIGN_OAUTH_BASE_URL")
	viper.BindEnv("esign.integrationKey", "DOCUSIGN_INTEGRATION_KEY")
	viper.BindEnv("esign.userID", "DOCUSIGN_USER_ID")
	viper.BindEnv("esign.accountID", "DOCUSIGN_ACCOUNT_ID")
	viper.BindEnv("esign.privateKey", "DOCUSIGN_PRIVATE_KEY")
	viper.BindEnv("geo.baseURL", "OPENROUTESERVICE_BASE_URL")
	viper.BindEnv("geo.apiKey", "OPENROUTESERVICE_API_KEY")
	viper.BindEnv("documents.templatesDir", "DOCUMENT_TEMPLATES_DIR")
	viper.BindEnv("documents.adminEmail", "DOCUMENT_ADMIN_EMAIL")
	viper.BindEnv("documents.customerEmail", "DOCUMENT_CUSTOMER_EMAIL")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.dbName", "freightflow")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("rates.baseURL", "https://api.reachship.com")
	viper.SetDefault("geo.baseURL", "https://api.openrouteservice.org")
	viper.SetDefault("documents.templatesDir", "./templates")
	viper.SetDefault("documents.adminEmail", "admin@freightflow.io")
	viper.SetDefault("documents.customerEmail", "customer@freightflow.io")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
