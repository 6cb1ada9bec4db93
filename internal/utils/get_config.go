package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppURL     string `yaml:"APP_URL"`
	ServerPort string `yaml:"SERVER_PORT"`
	ServerEnv  string `yaml:"SERVER_ENV"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Tracker key-value store configuration
	KVBackend    string `yaml:"KV_BACKEND"` // "redis" or "sqlite"
	RedisAddr    string `yaml:"REDIS_ADDR"`
	RedisPass    string `yaml:"REDIS_PASSWORD"`
	LocalKVPath  string `yaml:"LOCAL_KV_PATH"`
	ReclassEvery string `yaml:"RECLASSIFY_INTERVAL"` // Go duration, default 24h

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Notification configuration
	NotifyEmailTo string `yaml:"NOTIFY_EMAIL_TO"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    bool   `yaml:"IsProd"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Environment variables take precedence over the YAML file so the
	// service can run containerized without a config.yaml.
	overrideFromEnv()
}

func overrideFromEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&config.AppURL, "APP_URL")
	set(&config.ServerPort, "SERVER_PORT")
	set(&config.ServerEnv, "SERVER_ENV")
	set(&config.DBUser, "DB_USER")
	set(&config.DBName, "DB_NAME")
	set(&config.DBPassword, "DB_PASSWORD")
	set(&config.DBPort, "DB_PORT")
	set(&config.DBHost, "DB_HOST")
	set(&config.KVBackend, "KV_BACKEND")
	set(&config.RedisAddr, "REDIS_ADDR")
	set(&config.RedisPass, "REDIS_PASSWORD")
	set(&config.LocalKVPath, "LOCAL_KV_PATH")
	set(&config.ReclassEvery, "RECLASSIFY_INTERVAL")
	set(&config.JWTSecret, "JWT_SECRET")
	set(&config.SMTPHost, "SMTP_HOST")
	set(&config.SMTPPort, "SMTP_PORT")
	set(&config.SMTPSenderName, "SMTP_SENDER_NAME")
	set(&config.SMTPAuthEmail, "SMTP_AUTH_EMAIL")
	set(&config.SMTPAuthPassword, "SMTP_AUTH_PASSWORD")
	set(&config.NotifyEmailTo, "NOTIFY_EMAIL_TO")
	set(&config.ClientKey, "CLIENT_KEY")
	set(&config.ServerKey, "SERVER_KEY")
	set(&config.AWSS3Bucket, "AWS_S3_BUCKET")
	set(&config.AWSS3Region, "AWS_S3_REGION")
	set(&config.AWSAccessKey, "AWS_ACCESS_KEY")
	set(&config.AWSSecretKey, "AWS_SECRET_KEY")
	if v := os.Getenv("IS_PROD"); v != "" {
		config.IsProd = v == "true"
	}
}

func GetConfig(key string) string {
	switch key {
	case "APP_URL":
		return config.AppURL
	case "SERVER_PORT":
		return config.ServerPort
	case "SERVER_ENV":
		return config.ServerEnv
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "KV_BACKEND":
		return config.KVBackend
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPass
	case "LOCAL_KV_PATH":
		return config.LocalKVPath
	case "RECLASSIFY_INTERVAL":
		return config.ReclassEvery
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "NOTIFY_EMAIL_TO":
		return config.NotifyEmailTo
	case "CLIENT_KEY":
		return config.ClientKey
	case "SERVER_KEY":
		return config.ServerKey
	case "IsProd":
		if config.IsProd {
			return "true"
		}
		return "false"
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
