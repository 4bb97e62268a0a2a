// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// CartCachePrefix is the prefix used for Redis cart session keys.
const CartCachePrefix = "cart:"

// OTPCooldownPrefix is the prefix used for Redis OTP cooldown keys.
const OTPCooldownPrefix = "otp:cooldown:"

// CartSessionTTL is how long an unsubmitted cart survives in the cache.
const CartSessionTTL = 30 * time.Minute

// AccessTokenTTL is the lifetime of an access token.
const AccessTokenTTL = time.Hour

// RefreshTokenTTL is the lifetime of a refresh token and its cached hash.
const RefreshTokenTTL = 30 * 24 * time.Hour
