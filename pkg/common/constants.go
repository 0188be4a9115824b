package common

const (
	RedisKeyRefreshTokenPrefix = "auth.refresh."

	SymbolDirectoryCacheKey = "symbols.directory"

	DefaultSymbolRefreshCron = "0 5 * * *"
)
