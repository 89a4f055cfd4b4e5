package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/icholy/digest"
	"github.com/renokit/reno/models"
)

var (
	ErrMaterialNotFound = fmt.Errorf("no material found")
	ErrPhaseNotFound    = fmt.Errorf("no phase found")
)

type Client struct {
	base       string // base API endpoint
	httpClient http.Client
}

// NewClient builds an unauthenticated client for the given base endpoint.
func NewClient(base string) *Client {
	return &Client{
		base:       base,
		httpClient: http.Client{},
	}
}

// NewClientWithAuth builds a client that answers HTTP digest challenges,
// which is what the hosted backend uses for vendor and admin accounts.
func NewClientWithAuth(base, username, password string) *Client {
	return &Client{
		base: base,
		httpClient: http.Client{
			Transport: &digest.Transport{
				Username: username,
				Password: password,
			},
		},
	}
}

type MaterialFilter func(models.Material) bool

// FindMaterialsByName searches the catalog. The backend only supports a few
// query params; everything else is filtered client-side via filter. A name
// of "*" matches everything.
func (c *Client) FindMaterialsByName(name string, filter MaterialFilter, query map[string]string) ([]models.Material, error) {
	endpoint := c.base + "/api/v1/material"
	sort := "category:asc,unit_price:asc,name:asc,id:desc"
	trimmedName := strings.TrimSpace(name)

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("sort", sort)
	q.Set("limit", "1000")

	for k, v := range query {
		switch k {
		case "vendor":
			q.Set("vendor.name", v)
		case "category":
			q.Set("category", v)
		case "allow_archived":
			q.Set("allow_archived", "true")
		default:
			fmt.Printf("unknown query param: %s\n", k)
		}
	}

	// Only filter by name if it's not a wildcard
	if trimmedName != "*" {
		q.Set("name", trimmedName)
	}
	u.RawQuery = q.Encode()

	resp, err := c.httpClient.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out []models.Material
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if filter != nil {
		out = filterMaterials(out, filter)
	}
	return out, nil
}

func filterMaterials(materials []models.Material, filter MaterialFilter) []models.Material {
	var filtered []models.Material
	for _, m := range materials {
		if filter(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// FindMaterialById fetches a single catalog entry.
func (c *Client) FindMaterialById(id int) (*models.Material, error) {
	endpoint := fmt.Sprintf(c.base+"/api/v1/material/%d", id)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMaterialNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out models.Material
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// ListProjects returns the caller's projects with rooms and phases
// included. Pass "*" or "" to skip name filtering.
func (c *Client) ListProjects(name string) ([]models.Project, error) {
	u, err := url.Parse(c.base + "/api/v1/project")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	trimmed := strings.TrimSpace(name)
	if trimmed != "" && trimmed != "*" {
		q := u.Query()
		q.Set("name", trimmed)
		u.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out []models.Project
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for i := range out {
		out[i].DefaultStatus()
	}
	return out, nil
}

// GetPhase fetches a phase with its committed materials and vendor quotes.
// This is the refresh path after every save or delete: the whole phase is
// refetched rather than patched locally.
func (c *Client) GetPhase(phaseId int) (*models.Phase, error) {
	endpoint := fmt.Sprintf(c.base+"/api/v1/phase/%d", phaseId)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPhaseNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out models.Phase
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// UpdatePhaseMaterial sets the committed quantity of a phase-material
// association. Quantity must be positive; the empty edit state never
// reaches the wire.
func (c *Client) UpdatePhaseMaterial(phaseMaterialId int, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	endpoint := fmt.Sprintf(c.base+"/api/v1/phase-material/%d", phaseMaterialId)

	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	req, err := http.NewRequest(http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrMaterialNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

// DeletePhaseMaterial removes a committed material from its phase.
func (c *Client) DeletePhaseMaterial(phaseMaterialId int) error {
	endpoint := fmt.Sprintf(c.base+"/api/v1/phase-material/%d", phaseMaterialId)

	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrMaterialNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

// AddPhaseMaterials submits a whole selection to a phase in one request.
func (c *Client) AddPhaseMaterials(phaseId int, items []models.ChosenItem) error {
	if len(items) == 0 {
		return fmt.Errorf("nothing to submit")
	}
	endpoint := fmt.Sprintf(c.base+"/api/v1/phase/%d/material", phaseId)

	type lineItem struct {
		MaterialId int `json:"material_id"`
		Quantity   int `json:"quantity"`
	}
	batch := make([]lineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return fmt.Errorf("material %d has invalid quantity %d", it.MaterialID, it.Quantity)
		}
		batch = append(batch, lineItem{MaterialId: it.MaterialID, Quantity: it.Quantity})
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	resp, err := c.httpClient.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return ErrPhaseNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		fmt.Printf("failed to close response body: %v\n", err)
	}
}
