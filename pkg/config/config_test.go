package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL_SECONDS", "")
	t.Setenv("ORDER_TRANSITION_POLICY", "")

	cfg := Load("")

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "lenient", cfg.OrderTransitionPolicy)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("ORDER_TRANSITION_POLICY", "strict")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load("")

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "strict", cfg.OrderTransitionPolicy)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Config{
		DatabaseDriver:        "mysql",
		OrderTransitionPolicy: "anything",
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "DATABASE_DRIVER", "ORDER_TRANSITION_POLICY", "TOKEN_TTL_SECONDS"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV(" a ,b, "))
}
