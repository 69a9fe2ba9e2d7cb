package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSecrets(t *testing.T) {
	values := map[string]string{
		"B_KEY": "second",
		"A_KEY": "first",
	}

	t.Run("dotenv", func(t *testing.T) {
		out, err := formatSecrets(values, "dotenv")
		require.NoError(t, err)
		assert.Equal(t, "A_KEY=\"first\"\nB_KEY=\"second\"\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := formatSecrets(values, "json")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"A_KEY\": \"first\",\n  \"B_KEY\": \"second\"\n}\n", out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := formatSecrets(values, "yaml")
		require.NoError(t, err)
		assert.Equal(t, "A_KEY: first\nB_KEY: second\n", out)
	})

	t.Run("unknown format", func(t *testing.T) {
		out, err := formatSecrets(values, "xml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format xml")
		assert.Empty(t, out)
	})
}

func TestFormatSecretsDropsCredentials(t *testing.T) {
	values := map[string]string{
		"DATABASE_URL":            "postgres://localhost/app",
		"INFISICAL_CLIENT_ID":     "machine-id",
		"INFISICAL_CLIENT_SECRET": "machine-secret",
	}

	for _, format := range []string{"dotenv", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := formatSecrets(values, format)
			require.NoError(t, err)
			assert.Contains(t, out, "DATABASE_URL")
			assert.NotContains(t, out, "INFISICAL_CLIENT_ID")
			assert.NotContains(t, out, "machine-secret")
		})
	}
}

func TestFormatSecretsPreservesAwkwardValues(t *testing.T) {
	values := map[string]string{
		"EMPTY":     "",
		"MULTILINE": "line one\nline two",
		"EQUALS":    "a=b=c",
	}

	out, err := formatSecrets(values, "dotenv")
	require.NoError(t, err)
	assert.Contains(t, out, `EMPTY=""`)
	assert.Contains(t, out, `MULTILINE="line one\nline two"`)
	assert.Contains(t, out, `EQUALS="a=b=c"`)
}
