package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderFormValidate(t *testing.T) {
	form := ProviderForm{Name: "openai", BaseURL: "https://api.openai.com/v1", Model: "gpt-4o"}

	err := form.Validate(true)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "api_key", vErr.Field)

	// editing keeps the stored key
	assert.NoError(t, form.Validate(false))

	form.BaseURL = "not a url"
	assert.Error(t, form.Validate(false))
}

func TestModelsRequestValidate(t *testing.T) {
	err := (&ModelsRequest{BaseURL: "https://llm.example.com"}).Validate()
	assert.EqualError(t, err, "Please fill in the base URL and API key first")

	assert.NoError(t, (&ModelsRequest{BaseURL: "https://llm.example.com", APIKey: "sk-1"}).Validate())

	saved := &ModelsRequest{ProviderID: 3}
	assert.True(t, saved.UsesSavedProvider())
	assert.NoError(t, saved.Validate())

	saved.APIKey = "sk-new"
	assert.False(t, saved.UsesSavedProvider())
}

func TestTestModelRequestValidate(t *testing.T) {
	// the model is checked before the credentials
	err := (&TestModelRequest{}).Validate()
	assert.EqualError(t, err, "Please select a model first")

	err = (&TestModelRequest{Model: "gpt-4o"}).Validate()
	assert.EqualError(t, err, "Please fill in the base URL and API key first")

	assert.NoError(t, (&TestModelRequest{ProviderID: 2, Model: "gpt-4o"}).Validate())
	assert.NoError(t, (&TestModelRequest{BaseURL: "https://llm.example.com", APIKey: "k", Model: "m"}).Validate())
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-****cdef", MaskAPIKey("sk-1234567890abcdef"))
}

func TestPlatformTestRequestNeedsToken(t *testing.T) {
	cfg := GitPlatformConfig{PlatformType: PlatformGitLab, BaseURL: "https://gitlab.example.com"}

	_, err := cfg.TestRequest()
	assert.EqualError(t, err, "Access token is required to test the connection")

	cfg.AccessToken = "glpat-x"
	req, err := cfg.TestRequest()
	assert.NoError(t, err)
	assert.Equal(t, "glpat-x", req.AccessToken)

	cfg.BaseURL = "ftp://gitlab.example.com"
	_, err = cfg.TestRequest()
	assert.Error(t, err)
}
