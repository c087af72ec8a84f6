package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port          int
	MongoURI      string
	MongoDB       string
	UploadDir     string
	ResetTokenKey string
	Debug         bool
}

// LoadConfig 从环境变量加载配置
// 本地开发时优先读取 .env 文件
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "3001"))
	return &Config{
		Port:          port,
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "Students"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		ResetTokenKey: getEnv("RESET_TOKEN_KEY", "your-secret-key"), // 实际环境应替换为安全密钥
		Debug:         getEnv("GIN_MODE", "debug") == "debug",
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
