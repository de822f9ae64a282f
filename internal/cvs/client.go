package cvs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cvstools/cvs-operator/internal/retry"
)

// DefaultAPIURL is the public CVS API endpoint.
const DefaultAPIURL = "https://cloudvolumesgcp-api.netapp.com"

// Default poll cadences and windows, matching the service's completion
// profiles. A zero window polls until terminal (caller opt-in).
const (
	VolumePollInterval = 20 * time.Second
	PoolPollInterval   = 20 * time.Second
	BackupPollInterval = 5 * time.Second
	BreakPollInterval  = 15 * time.Second

	CreateWindow          = 15 * time.Minute
	BackupAvailableWindow = 10 * time.Minute
	BreakWindow           = 5 * time.Minute
)

// Options configures a Client. ProjectNumber must already be resolved; id
// to number resolution is the auth collaborator's job.
type Options struct {
	// APIURL overrides DefaultAPIURL (useful for tests).
	APIURL string
	// ProjectNumber is the numeric GCP project identifier.
	ProjectNumber string
	// Transport performs authenticated HTTP exchanges.
	Transport Transport
	// WriteBudget governs create/delete retries. Zero value takes
	// retry.Default.
	WriteBudget retry.Budget
}

// Client is the CVS control-plane client. It holds only read-only
// configuration; concurrent orchestrations each carry their own budget
// and poll state.
type Client struct {
	baseURL     string
	project     string
	transport   Transport
	writeBudget retry.Budget

	// Poll cadences, per resource kind. Set from the package defaults;
	// overridable in tests.
	volumePoll time.Duration
	poolPoll   time.Duration
	backupPoll time.Duration
	breakPoll  time.Duration
}

func New(opts Options) (*Client, error) {
	if opts.ProjectNumber == "" {
		return nil, &ValidationError{Reason: "project number is required"}
	}
	if opts.Transport == nil {
		return nil, &ValidationError{Reason: "transport is required"}
	}
	base := opts.APIURL
	if base == "" {
		base = DefaultAPIURL
	}
	budget := opts.WriteBudget
	if budget.Window <= 0 && !budget.NoRetry {
		budget = retry.Default
	}
	return &Client{
		baseURL:     base,
		project:     opts.ProjectNumber,
		transport:   opts.Transport,
		writeBudget: budget,
		volumePoll:  VolumePollInterval,
		poolPoll:    PoolPollInterval,
		backupPoll:  BackupPollInterval,
		breakPoll:   BreakPollInterval,
	}, nil
}

// ProjectNumber returns the project the client is bound to.
func (c *Client) ProjectNumber() string { return c.project }

// url builds a regional API path. Region "-" addresses all regions.
func (c *Client) url(region, suffix string) string {
	return fmt.Sprintf("%s/v2/projects/%s/locations/%s/%s", c.baseURL, c.project, region, suffix)
}

// get performs a single-attempt read and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, region, path string, out any) error {
	res, err := c.execute(ctx, OperationRequest{
		Method: http.MethodGet,
		URL:    c.url(region, path),
		Region: region,
	}, retry.None())
	if err != nil {
		return err
	}
	return json.Unmarshal(res.Body, out)
}

// put performs a single-attempt modify and decodes the response into out
// when out is non-nil.
func (c *Client) put(ctx context.Context, region, path string, changes, out any) error {
	res, err := c.execute(ctx, OperationRequest{
		Method:  http.MethodPut,
		URL:     c.url(region, path),
		Region:  region,
		Payload: changes,
	}, retry.None())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(res.Body, out)
}

// post submits a write under the client's full retry budget. Poll windows
// bound only the wait for completion, never the write's retries.
func (c *Client) post(ctx context.Context, region, path string, payload any) (ProvisionalResult, error) {
	return c.execute(ctx, OperationRequest{
		Method:  http.MethodPost,
		URL:     c.url(region, path),
		Region:  region,
		Payload: payload,
	}, c.writeBudget)
}

// delete submits a delete under the client's retry budget.
func (c *Client) delete(ctx context.Context, region, path string) (ProvisionalResult, error) {
	return c.execute(ctx, OperationRequest{
		Method: http.MethodDelete,
		URL:    c.url(region, path),
		Region: region,
	}, c.writeBudget)
}

// Version returns the API and SDE versions for a region. Also serves as a
// cheap permission check.
func (c *Client) Version(ctx context.Context, region string) (VersionInfo, error) {
	var v VersionInfo
	err := c.get(ctx, region, "version", &v)
	return v, err
}
