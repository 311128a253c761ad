package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfmc-client/internal/client"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// recordedRequest is what the fake tenant saw for one REST or SOAP call.
type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Filter        string
	Authorization string
	SOAPAction    string
	Body          string
}

// fakeTenant serves the auth, REST and SOAP endpoints of one tenant.
type fakeTenant struct {
	server     *httptest.Server
	tokenCalls atomic.Int32

	mutex    sync.Mutex
	requests []recordedRequest

	restStatus int
	restBody   string
	soapStatus int
	soapBody   string
}

func newFakeTenant(t *testing.T) *fakeTenant {
	t.Helper()

	tenant := &fakeTenant{
		restStatus: http.StatusOK,
		restBody:   `{"items":[]}`,
		soapStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/token", func(w http.ResponseWriter, _ *http.Request) {
		tenant.tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tenant-token",
			"token_type":   "Bearer",
			"expires_in":   1080,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		tenant.record(recordedRequest{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			RawQuery:      r.URL.RawQuery,
			Filter:        r.URL.Query().Get("$filter"),
			Authorization: r.Header.Get("Authorization"),
			SOAPAction:    r.Header.Get("SOAPAction"),
			Body:          string(body),
		})

		tenant.mutex.Lock()
		defer tenant.mutex.Unlock()

		if strings.HasSuffix(r.URL.Path, "/Service.asmx") {
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			w.WriteHeader(tenant.soapStatus)
			_, _ = w.Write([]byte(tenant.soapBody))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(tenant.restStatus)
		_, _ = w.Write([]byte(tenant.restBody))
	})

	tenant.server = httptest.NewServer(mux)
	t.Cleanup(tenant.server.Close)

	return tenant
}

func (f *fakeTenant) record(req recordedRequest) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.requests = append(f.requests, req)
}

func (f *fakeTenant) Requests() []recordedRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeTenant) RespondREST(status int, body string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.restStatus = status
	f.restBody = body
}

func (f *fakeTenant) RespondSOAP(status int, body string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.soapStatus = status
	f.soapBody = body
}

func (f *fakeTenant) Config() *sfmc.Config {
	return &sfmc.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthEndpoint: f.server.URL,
		RESTEndpoint: f.server.URL,
		SOAPEndpoint: f.server.URL,
	}
}

func (f *fakeTenant) Client(t *testing.T) *client.Client {
	t.Helper()

	c, err := client.New(f.Config())
	require.NoError(t, err)

	return c
}

func soapEnvelope(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<soap:Body>` + body + `</soap:Body></soap:Envelope>`
}
