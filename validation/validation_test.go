package validation_test

import (
	"strings"
	"testing"

	"github.com/mkarakas/authkit/errors"
	"github.com/mkarakas/authkit/validation"
)

type sampleConfig struct {
	Domain   string `mapstructure:"domain" validate:"required,url"`
	ClientID string `mapstructure:"client_id" validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := validation.Struct(sampleConfig{
		Domain:   "https://id.example.com",
		ClientID: "abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_MissingFields(t *testing.T) {
	err := validation.Struct(sampleConfig{})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "domain") || !strings.Contains(appErr.Message, "client_id") {
		t.Errorf("expected mapstructure field names in message, got %q", appErr.Message)
	}
}

func TestStruct_InvalidURL(t *testing.T) {
	err := validation.Struct(sampleConfig{Domain: "not a url", ClientID: "abc"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must be a valid URL") {
		t.Errorf("expected URL message, got %q", err.Error())
	}
}
