package utils

import (
	"net"
	"net/http"
	"strings"
)

const unknownIP = "0.0.0.0"

// ClientIP 获取客户端真实 IP ，依次检查 X-Real-IP 、 X-Forwarded-For 的第一段和连接地址
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}

	return unknownIP
}
