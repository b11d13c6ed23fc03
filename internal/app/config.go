package app

import (
	"time"

	"github.com/yungbote/projectgate-backend/internal/platform/envutil"
)

type Config struct {
	HTTPAddr       string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:       envutil.String("HTTP_ADDR", ":8080"),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
	}
}
