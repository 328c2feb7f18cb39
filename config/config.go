package config

import "time"

type Config struct {
	Web      Web
	DB       DB
	Cors     Cors
	Stripe   Stripe
	Paypal   Paypal
	Checkout Checkout
	Rate     Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:market"`
	DisableTLS bool   `conf:"default:true"`
}

type Cors struct {
	Origin string `conf:"default:"`
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`
	SuccessURL    string `conf:"default:http://localhost:5173/payment-success"`
	CancelURL     string `conf:"default:http://localhost:5173/payment-failed"`
}

type Paypal struct {
	ClientID string `conf:"mask"`
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}

// Checkout bounds the calls made against the payment gateways. Gateway
// requests that exceed the timeout fail the request instead of hanging it.
type Checkout struct {
	GatewayTimeout time.Duration `conf:"default:10s"`
}

type Rate struct {
	Burst      int           `conf:"default:5"`
	ExpiryMins int           `conf:"default:30"`
	Interval   time.Duration `conf:"default:1s"`
}
