package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	RedisAddr   string
	JWTExpiry   time.Duration
	Port        string
	SiteName    string
	SiteUrl     string

	// 上游目录源（json-server / Supabase REST 兼容）
	UpstreamURL  string
	UpstreamSite string

	// 课程向量化
	EmbeddingAPIKey string
	EmbeddingModel  string
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "learnly")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		AppSecret:       appSecret,
		DatabaseURL:     dbURL,
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		JWTExpiry:       time.Duration(expiryHours) * time.Hour,
		Port:            getEnv("PORT", "5006"),
		SiteName:        getEnv("SITE_NAME", "Learnly"),
		SiteUrl:         getEnv("SITE_URL", "http://localhost:5006"),
		UpstreamURL:     getEnv("UPSTREAM_URL", ""),
		UpstreamSite:    getEnv("UPSTREAM_SITE_URL", ""),
		EmbeddingAPIKey: getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-004"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
