package soap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	sfmchttp "github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// TokenSource supplies the token placed in the envelope header.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// Client sends partner API requests. The token travels in the envelope, so the
// underlying HTTP client must not add its own Authorization header.
type Client struct {
	httpClient *sfmchttp.Client
	tokens     TokenSource
	logger     sfmc.Logger
}

// NewClient creates a SOAP client over httpClient, whose base URL is the SOAP endpoint.
func NewClient(httpClient *sfmchttp.Client, tokens TokenSource, logger sfmc.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		logger:     logger,
	}
}

// Call sends body as action and returns the decoded response. Faults, and
// non-2xx answers, are returned as *sfmc.RemoteOperationError.
func (c *Client) Call(ctx context.Context, action Action, body interface{}) (*Response, error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}

	payload, err := BuildEnvelope(token, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &sfmchttp.Request{
		Method: http.MethodPost,
		Path:   constants.SOAPServicePath,
		Headers: map[string]string{
			"Accept":                   "text/xml",
			"Content-Type":             constants.SOAPContentType,
			constants.SOAPActionHeader: string(action),
		},
		RawBody:  payload,
		SkipAuth: true,
	})
	if err != nil {
		statusErr := &sfmchttp.StatusError{}
		if !errors.As(err, &statusErr) {
			return nil, err
		}

		return nil, c.statusFailure(action, statusErr)
	}

	parsed, err := ParseResponse(resp.Body)
	if err != nil {
		return nil, &sfmc.RemoteOperationError{Action: string(action), Detail: err.Error()}
	}

	if parsed.Fault != nil {
		return nil, c.faultFailure(action, parsed.Fault)
	}

	return parsed, nil
}

// Retrieve runs req and returns one row per result.
func (c *Client) Retrieve(ctx context.Context, req *RetrieveRequestMsg) ([]sfmc.Row, error) {
	resp, err := c.Call(ctx, ActionRetrieve, req)
	if err != nil {
		return nil, err
	}

	msg := resp.RetrieveResponseMsg
	if msg == nil {
		return nil, missingNode(ActionRetrieve)
	}

	if msg.OverallStatus != constants.OverallStatusOK {
		return nil, &sfmc.RemoteOperationError{Action: string(ActionRetrieve), OverallStatus: msg.OverallStatus}
	}

	return msg.Rows(), nil
}

// Create runs req.
func (c *Client) Create(ctx context.Context, req *CreateRequest) error {
	resp, err := c.Call(ctx, ActionCreate, req)
	if err != nil {
		return err
	}

	return checkOperation(ActionCreate, resp.CreateResponse)
}

// Delete runs req.
func (c *Client) Delete(ctx context.Context, req *DeleteRequest) error {
	resp, err := c.Call(ctx, ActionDelete, req)
	if err != nil {
		return err
	}

	return checkOperation(ActionDelete, resp.DeleteResponse)
}

func checkOperation(action Action, resp *OperationResponse) error {
	if resp == nil {
		return missingNode(action)
	}

	if resp.OverallStatus != constants.OverallStatusOK {
		return &sfmc.RemoteOperationError{
			Action:        string(action),
			OverallStatus: resp.OverallStatus,
			Detail:        resp.Detail(),
		}
	}

	return nil
}

func missingNode(action Action) error {
	return &sfmc.RemoteOperationError{Action: string(action), Detail: sfmc.ErrMissingResponseNode.Error()}
}

func (c *Client) statusFailure(action Action, statusErr *sfmchttp.StatusError) error {
	parsed, err := ParseResponse(statusErr.Body)
	if err == nil && parsed.Fault != nil {
		return c.faultFailure(action, parsed.Fault)
	}

	c.logFailure(action, statusErr.Status)

	return &sfmc.RemoteOperationError{Action: string(action), Detail: statusErr.Status}
}

func (c *Client) faultFailure(action Action, fault *Fault) error {
	detail := fault.String
	if fault.Code != "" {
		detail = fault.Code + ": " + fault.String
	}

	c.logFailure(action, detail)

	return &sfmc.RemoteOperationError{Action: string(action), Detail: detail}
}

func (c *Client) logFailure(action Action, detail string) {
	if c.logger == nil {
		return
	}

	c.logger.Error("SOAP request failed", map[string]interface{}{
		"action": string(action),
		"detail": detail,
	})
}
