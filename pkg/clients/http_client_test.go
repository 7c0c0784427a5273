package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHTTPClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Auth", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := NewHTTPClient()
	headers := http.Header{}
	headers.Set("Authorization", "Bearer sk_test")

	status, body, respHeaders, err := client.Send(context.Background(), http.MethodPost, srv.URL, headers, strings.NewReader("a=b"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "a=b", string(body))
	assert.Equal(t, http.MethodPost, respHeaders.Get("X-Method"))
	assert.Equal(t, "Bearer sk_test", respHeaders.Get("X-Auth"))
}

func TestHTTPClient_SendCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Send(ctx, http.MethodGet, srv.URL, nil, nil)
	assert.Error(t, err)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().
		Send(gomock.Any(), http.MethodGet, "http://stripe.local", gomock.Any(), gomock.Any()).
		Return(http.StatusOK, []byte("{}"), http.Header{}, nil)

	client := NewHTTPClient()
	client.SetClient(mock)

	status, body, _, err := client.Send(context.Background(), http.MethodGet, "http://stripe.local", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", string(body))
}

func TestTransport_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "http://stripe.local/v1/ping", req.URL.String())
		return &http.Response{StatusCode: http.StatusTeapot, Body: io.NopCloser(strings.NewReader("ok")), Request: req}, nil
	})

	client := &http.Client{Transport: Transport{Client: mock}}
	resp, err := client.Get("http://stripe.local/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
