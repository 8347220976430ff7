package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"production with secret", Config{Env: "production", JWTSecret: "s3cret"}, nil},
		{"production without secret", Config{Env: "production"}, ErrMissingJWTSecret},
		{"production blank secret", Config{Env: "production", JWTSecret: "   "}, ErrMissingJWTSecret},
		{"development without secret", Config{Env: "development"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
