package bootstrap

import (
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "courseforge",
	}
	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err != nil {
		t.Errorf("ValidateConfig: %v", err)
	}
}

func TestValidateConfigRejectsBadMongoURI(t *testing.T) {
	cfg := AppConfig{MongoURI: "not-a-mongo-uri"}
	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a malformed MongoDB URI")
	}
}

func TestValidateConfigRejectsPartialGoogleCreds(t *testing.T) {
	cfg := AppConfig{
		MongoURI:       "mongodb://localhost:27017",
		GoogleClientID: "client-id-without-secret",
	}
	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error when only one Google credential is set")
	}
}
