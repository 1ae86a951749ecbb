package internal

import "time"

type Config struct {
	Host              string        `env:"HOST,required=true"`
	Port              int           `env:"PORT,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	DefaultPageSize   int           `env:"DEFAULT_PAGE_SIZE,required=true"`
	MaxPageSize       int           `env:"MAX_PAGE_SIZE,required=true"`
	MaxBodyLength     int           `env:"MAX_BODY_LENGTH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
}
