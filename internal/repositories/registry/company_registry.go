// Package registry talks to the external company registry service, which owns
// the tenant hierarchy (companies and the units beneath a shared parent).
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	portsrepo "github.com/retailos/accounting_service/internal/core/ports/repositories"
)

// CompanyRegistryClient resolves tenant-unit sets over the registry's HTTP
// API. Resolution is best effort: any failure or miss degrades to treating the
// company id as a singleton set, so reports always render.
type CompanyRegistryClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ portsrepo.TenantUnitResolver = (*CompanyRegistryClient)(nil)

// NewCompanyRegistryClient creates a registry client. An empty baseURL yields
// a client that always falls back to singleton resolution, which is the right
// behavior for single-tenant deployments.
func NewCompanyRegistryClient(baseURL string, logger *slog.Logger) *CompanyRegistryClient {
	return &CompanyRegistryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

type unitListResponse struct {
	Units []struct {
		ID string `json:"id"`
	} `json:"units"`
}

// ResolveUnitIDs returns every unit id sharing a parent tenant with the given
// company id, the id itself included. Never fails: registry errors log a
// warning and fall back to the singleton set.
func (c *CompanyRegistryClient) ResolveUnitIDs(ctx context.Context, companyID string) []string {
	singleton := []string{companyID}
	if c.baseURL == "" {
		return singleton
	}

	endpoint := fmt.Sprintf("%s/api/v1/companies/%s/units", c.baseURL, url.PathEscape(companyID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("failed to build registry request, using singleton tenant set", "company_id", companyID, "error", err)
		return singleton
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("company registry unreachable, using singleton tenant set", "company_id", companyID, "error", err)
		return singleton
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("company registry returned unexpected status, using singleton tenant set", "company_id", companyID, "status", resp.StatusCode)
		}
		return singleton
	}

	var body unitListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("failed to decode registry response, using singleton tenant set", "company_id", companyID, "error", err)
		return singleton
	}
	if len(body.Units) == 0 {
		return singleton
	}

	ids := make([]string, 0, len(body.Units)+1)
	seen := map[string]struct{}{}
	for _, u := range body.Units {
		if u.ID == "" {
			continue
		}
		if _, ok := seen[u.ID]; !ok {
			seen[u.ID] = struct{}{}
			ids = append(ids, u.ID)
		}
	}
	if _, ok := seen[companyID]; !ok {
		ids = append(ids, companyID)
	}
	if len(ids) == 0 {
		return singleton
	}
	return ids
}
