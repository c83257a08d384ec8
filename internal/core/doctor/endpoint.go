package doctor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hay-kot/coderev/internal/core/config"
)

const checkTimeout = 5 * time.Second

// EndpointCheck reports the resolved review endpoint and whether it answers.
// Any HTTP response counts as reachable; the service may reject HEAD.
type EndpointCheck struct {
	endpoint config.Endpoint
	client   *http.Client
}

// NewEndpointCheck creates a new endpoint check. A nil client uses
// http.DefaultClient.
func NewEndpointCheck(endpoint config.Endpoint, client *http.Client) *EndpointCheck {
	if client == nil {
		client = http.DefaultClient
	}
	return &EndpointCheck{endpoint: endpoint, client: client}
}

func (c *EndpointCheck) Name() string {
	return "Endpoint"
}

func (c *EndpointCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	result.Items = append(result.Items, CheckItem{
		Label:  "resolved",
		Status: StatusPass,
		Detail: fmt.Sprintf("%s (from %s)", c.endpoint.URL, c.endpoint.Source),
	})

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint.URL, nil)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "reachable", Status: StatusFail, Detail: err.Error()})
		return result
	}

	resp, err := c.client.Do(req)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "reachable", Status: StatusWarn, Detail: err.Error()})
		return result
	}
	_ = resp.Body.Close()

	result.Items = append(result.Items, CheckItem{
		Label:  "reachable",
		Status: StatusPass,
		Detail: fmt.Sprintf("responded %d", resp.StatusCode),
	})
	return result
}
