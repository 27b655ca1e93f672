package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *StripeClient {
	return &StripeClient{
		SecretKey:  "sk_test_123",
		APIBaseURL: serverURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreatePortalSession(t *testing.T) {
	var gotPath, gotAuth, gotIdempotency, gotCustomer, gotReturnURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("Idempotency-Key")
		require.NoError(t, r.ParseForm())
		gotCustomer = r.PostFormValue("customer")
		gotReturnURL = r.PostFormValue("return_url")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"bps_1","customer":"cus_9","url":"https://billing.stripe.com/session/xyz","return_url":"https://shop.test/account"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	session, err := client.CreatePortalSession(context.Background(), "cus_9", "https://shop.test/account")
	require.NoError(t, err)

	assert.Equal(t, "/billing_portal/sessions", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.NotEmpty(t, gotIdempotency)
	assert.Equal(t, "cus_9", gotCustomer)
	assert.Equal(t, "https://shop.test/account", gotReturnURL)
	assert.Equal(t, "bps_1", session.ID)
	assert.Equal(t, "https://billing.stripe.com/session/xyz", session.URL)
}

func TestCreatePortalSessionRemoteRejection(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"no such customer"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreatePortalSession(context.Background(), "cus_missing", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=402")
	// Terminal failure, no retry.
	assert.Equal(t, 1, calls)
}

func TestCreatePortalSessionValidation(t *testing.T) {
	client := newTestClient("http://unused.test")

	client.SecretKey = ""
	_, err := client.CreatePortalSession(context.Background(), "cus_1", "")
	require.Error(t, err)

	client.SecretKey = "sk_test_123"
	_, err = client.CreatePortalSession(context.Background(), "  ", "")
	require.Error(t, err)
}

func TestCreatePortalSessionMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"bps_1"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreatePortalSession(context.Background(), "cus_1", "")
	require.Error(t, err)
}
