package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-management/internal/common/config"
)

var defaultCORSMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodOptions,
}

var defaultCORSHeaders = []string{
	"Origin",
	"Content-Type",
	"Accept",
	"Authorization",
	HeaderRequestID,
	"X-Requested-With",
}

var defaultExposeHeaders = []string{
	"Content-Length",
	"Content-Disposition",
	HeaderRequestID,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
}

// BuildCORSConfig 将应用配置转换为 gin-contrib/cors 配置
// 源列表为空或包含 "*" 时允许所有源
func BuildCORSConfig(cfg *config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:     defaultCORSMethods,
		AllowHeaders:     defaultCORSHeaders,
		ExposeHeaders:    defaultExposeHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if cfg == nil {
		out.AllowAllOrigins = true
		return out
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		out.AllowAllOrigins = true
	} else {
		out.AllowOrigins = cfg.AllowedOrigins
		out.AllowCredentials = cfg.AllowCredentials
	}

	if len(cfg.AllowedMethods) > 0 {
		out.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		out.AllowHeaders = cfg.AllowedHeaders
	}
	if len(cfg.ExposedHeaders) > 0 {
		out.ExposeHeaders = cfg.ExposedHeaders
	}
	if cfg.MaxAge > 0 {
		out.MaxAge = time.Duration(cfg.MaxAge) * time.Second
	}
	return out
}

// CORS 跨域中间件
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(BuildCORSConfig(cfg))
}
