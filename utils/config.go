package utils

import "glowtheory/config"

// IsProduction reports whether the server runs with ENV=production.
func IsProduction() bool {
	return config.IsProduction()
}

// DebugCodesEnabled reports whether generated OTP codes may be echoed back
// in API responses. Never true in production regardless of configuration.
func DebugCodesEnabled() bool {
	return config.AppConfig.OTPDebug && !config.IsProduction()
}
