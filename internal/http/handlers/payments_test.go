package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/gateway"

	"github.com/gin-gonic/gin"
)

type fakeIntentCreator struct {
	calls      int
	lastAmount int64
	lastRef    string
	err        error
}

func (f *fakeIntentCreator) CreateIntent(amountMinor int64, currency, bookingID string) (gateway.Intent, error) {
	f.calls++
	f.lastAmount = amountMinor
	f.lastRef = bookingID
	if f.err != nil {
		return gateway.Intent{}, f.err
	}
	return gateway.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func newIntentRouter(t *testing.T, creator gateway.IntentCreator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init(intconfig.Env{Currency: "PHP", StripePublishableKey: "pk_test"}, creator)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	r.POST("/api/create-payment-intent", CreatePaymentIntent)
	r.GET("/api/payments/config", PaymentsConfig)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentIntentRejectsBadAmounts(t *testing.T) {
	fake := &fakeIntentCreator{}
	r := newIntentRouter(t, fake)

	for _, body := range []string{
		`{}`,
		`{"amount": 0}`,
		`{"amount": -5}`,
		`{"amount": null}`,
	} {
		w := postJSON(r, "/api/create-payment-intent", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body %s: bad json: %v", body, err)
		}
		if resp["error"] != "Invalid amount" {
			t.Errorf("body %s: error = %v", body, resp["error"])
		}
	}

	if fake.calls != 0 {
		t.Errorf("gateway called %d times for invalid amounts", fake.calls)
	}
}

func TestCreatePaymentIntentConvertsToMinorUnits(t *testing.T) {
	fake := &fakeIntentCreator{}
	r := newIntentRouter(t, fake)

	w := postJSON(r, "/api/create-payment-intent", `{"amount": 1500.5, "bookingId": "42"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if fake.lastAmount != 150050 {
		t.Errorf("minor units = %d, want 150050", fake.lastAmount)
	}
	if fake.lastRef != "42" {
		t.Errorf("booking ref = %q, want 42", fake.lastRef)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["clientSecret"] != "pi_test_secret" || resp["paymentIntentId"] != "pi_test" {
		t.Errorf("response = %v", resp)
	}
}

func TestCreatePaymentIntentSurfacesGatewayMessage(t *testing.T) {
	fake := &fakeIntentCreator{err: domain.GatewayError{Msg: "Amount must convert to at least 50 cents."}}
	r := newIntentRouter(t, fake)

	w := postJSON(r, "/api/create-payment-intent", `{"amount": 0.01}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["error"] != "Amount must convert to at least 50 cents." {
		t.Errorf("error = %v, want the processor's own message", resp["error"])
	}
}

func TestCreatePaymentIntentMethodNotAllowed(t *testing.T) {
	fake := &fakeIntentCreator{}
	r := newIntentRouter(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/create-payment-intent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
	if fake.calls != 0 {
		t.Error("gateway called on a rejected method")
	}
}

func TestPaymentsConfig(t *testing.T) {
	r := newIntentRouter(t, &fakeIntentCreator{})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp["publishableKey"] != "pk_test" || resp["currency"] != "PHP" {
		t.Errorf("response = %v", resp)
	}
}
