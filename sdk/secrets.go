package sdk

import (
	"context"
	"fmt"
	"net/url"
)

const secretsPath = "/v3/secrets/raw"

// GetSecret fetches one secret's value from the given environment, or from
// the client's default environment when environment is empty.
func (c *Client) GetSecret(ctx context.Context, name, environment string) (string, error) {
	query := url.Values{}
	query.Set("workspaceSlug", c.workspace)
	query.Set("environment", c.resolveEnvironment(environment))

	op := fmt.Sprintf("get secret %s", name)
	var response secretResponse
	if err := c.get(ctx, op, secretsPath+"/"+url.PathEscape(name), query, &response); err != nil {
		return "", err
	}
	if response.Secret == nil {
		return "", &DecodeError{Op: op, Err: fmt.Errorf("missing secret field")}
	}
	return response.Secret.SecretValue, nil
}

// GetAllSecrets fetches every secret of an environment as a key/value map,
// defaulting the environment like GetSecret. The response list is folded in
// order, so when the service returns a key twice the later entry wins. An
// error never yields a partial map.
func (c *Client) GetAllSecrets(ctx context.Context, environment string) (map[string]string, error) {
	query := url.Values{}
	query.Set("workspaceSlug", c.workspace)
	query.Set("environment", c.resolveEnvironment(environment))

	var response secretsListResponse
	if err := c.get(ctx, "list secrets", secretsPath, query, &response); err != nil {
		return nil, err
	}
	if response.Secrets == nil {
		return nil, &DecodeError{Op: "list secrets", Err: fmt.Errorf("missing secrets field")}
	}

	secrets := make(map[string]string, len(*response.Secrets))
	for _, entry := range *response.Secrets {
		secrets[entry.SecretKey] = entry.SecretValue
	}
	return secrets, nil
}

// Wire shapes. Pointers distinguish a present-but-empty payload from a 200
// that is missing the field entirely; the latter is a protocol error.
type secretEntry struct {
	SecretKey   string `json:"secretKey"`
	SecretValue string `json:"secretValue"`
}

type secretResponse struct {
	Secret *secretEntry `json:"secret"`
}

type secretsListResponse struct {
	Secrets *[]secretEntry `json:"secrets"`
}
