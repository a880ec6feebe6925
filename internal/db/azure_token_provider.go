package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// azureTokenSource wraps any azcore credential as a TokenProvider scoped to
// Azure Database for PostgreSQL.
type azureTokenSource struct {
	credential  azcore.TokenCredential
	description string
}

func (s *azureTokenSource) GetToken(ctx context.Context) (string, time.Time, error) {
	token, err := s.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{AzurePostgreSQLScope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition failed: %w", err)
	}
	return token.Token, token.ExpiresOn, nil
}

func (s *azureTokenSource) String() string { return s.description }

// AzureServicePrincipalProvider authenticates with explicit Service Principal
// credentials, the usual setup for CI pipelines.
type AzureServicePrincipalProvider struct {
	azureTokenSource
}

// NewAzureServicePrincipalProvider requires all three of tenantID, clientID
// and clientSecret.
func NewAzureServicePrincipalProvider(tenantID, clientID, clientSecret string) (*AzureServicePrincipalProvider, error) {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("azure service principal requires tenantID, clientID, and clientSecret")
	}

	cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return &AzureServicePrincipalProvider{azureTokenSource{
		credential:  cred,
		description: fmt.Sprintf("AzureServicePrincipal(tenant=%s, client=%s)", tenantID, clientID),
	}}, nil
}

// AzureDefaultCredentialProvider rides the DefaultAzureCredential chain:
// environment variables, workload identity, managed identity, then the local
// Azure CLI family.
type AzureDefaultCredentialProvider struct {
	azureTokenSource
}

func NewAzureDefaultCredentialProvider() (*AzureDefaultCredentialProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
	}

	return &AzureDefaultCredentialProvider{azureTokenSource{
		credential:  cred,
		description: "AzureDefaultCredential",
	}}, nil
}
