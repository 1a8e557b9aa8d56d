package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"campus.db"`

	Checkout Checkout `envPrefix:"CHECKOUT_"`
	Auth     Auth     `envPrefix:"AUTH_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Checkout struct {
	PinMaxAttempts int           `env:"PIN_MAX_ATTEMPTS" envDefault:"3"`
	PinSessionTTL  time.Duration `env:"PIN_SESSION_TTL" envDefault:"2m"`
	// Daily simple-interest rate applied per whole day overdue.
	LateFeeDailyRate string `env:"LATE_FEE_DAILY_RATE" envDefault:"0.002"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-only-secret"`
}
