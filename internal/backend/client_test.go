package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gvnatural/internal/domain"

	"go.uber.org/zap"
)

func noToken(ctx context.Context) (string, bool) { return "", false }

func fixedToken(token string) TokenSource {
	return func(ctx context.Context) (string, bool) { return token, true }
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, tokens, zap.NewNop())
}

func TestClientUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statusCode":200,"status":"success","data":{"_id":"p1","name":"Wild Honey","price_per_kg":500}}`))
	}, noToken)

	product, err := NewProductsAPI(client).Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if product.ID != "p1" || product.Name != "Wild Honey" || product.PricePerKg != 500 {
		t.Errorf("unexpected product: %+v", product)
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"statusCode":200,"status":"success","data":[]}`))
	}, fixedToken("my-token"))

	if _, err := NewProductsAPI(client).List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotAuth != "Bearer my-token" {
		t.Errorf("Authorization = %q, want Bearer my-token", gotAuth)
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"statusCode":200,"status":"success","data":[]}`))
	}, noToken)

	if _, err := NewProductsAPI(client).List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientNonObjectDataIsTreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string data", `{"statusCode":200,"status":"success","data":"Product created"}`},
		{"null data", `{"statusCode":200,"status":"success","data":null}`},
		{"missing data", `{"statusCode":200,"status":"success"}`},
		{"number data", `{"statusCode":200,"status":"success","data":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, noToken)

			product, err := NewProductsAPI(client).Get(context.Background(), "p1")
			if err != nil {
				t.Fatalf("non-object data must not error, got: %v", err)
			}
			if product.ID != "" {
				t.Errorf("expected zero-value product, got %+v", product)
			}
		})
	}
}

func TestClient401InvokesHookAndReturnsErrUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}, fixedToken("stale"))

	hookCalled := false
	client.SetUnauthorizedHook(func(ctx context.Context) { hookCalled = true })

	_, err := NewProductsAPI(client).List(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !hookCalled {
		t.Error("401 must invoke the unauthorized hook")
	}
}

func TestClientErrorMessageAsString(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"slug already exists"}`))
	}, noToken)

	_, err := NewProductsAPI(client).Get(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "slug already exists" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClientErrorMessageAsList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["name is required","price must be positive"]}`))
	}, noToken)

	_, err := NewProductsAPI(client).Get(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "name is required" {
		t.Errorf("expected first message from the list, got %q", apiErr.Message)
	}
}

func TestClientErrorWithoutMessageUsesGeneric(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}, noToken)

	_, err := NewProductsAPI(client).Get(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != genericErrorMessage {
		t.Errorf("expected generic message, got %q", apiErr.Message)
	}
}

func TestProductFormMultipartBoundaryPreserved(t *testing.T) {
	var gotContentType string
	var fields map[string][]string
	var imageName string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("server could not parse multipart body: %v", err)
		} else {
			fields = r.MultipartForm.Value
			if files := r.MultipartForm.File["image"]; len(files) > 0 {
				imageName = files[0].Filename
			}
		}
		w.Write([]byte(`{"statusCode":201,"status":"success","data":{"_id":"p1","name":"Wild Honey"}}`))
	}, fixedToken("admin-token"))

	price := 500.0
	active := true
	form := &ProductForm{
		Name:          "Wild Honey",
		Slug:          "wild-honey",
		PricePerKg:    &price,
		IsActive:      &active,
		Image:         []byte("fake image bytes"),
		ImageFilename: "honey.jpg",
	}

	product, err := NewAdminAPI(client).CreateProduct(context.Background(), form)
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if product.ID != "p1" {
		t.Errorf("unexpected product: %+v", product)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Errorf("Content-Type = %q, want multipart with boundary", gotContentType)
	}
	if got := fields["name"]; len(got) != 1 || got[0] != "Wild Honey" {
		t.Errorf("name field = %v", got)
	}
	if got := fields["price_per_kg"]; len(got) != 1 || got[0] != "500" {
		t.Errorf("price_per_kg field = %v", got)
	}
	if got := fields["is_active"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("is_active field = %v", got)
	}
	if _, ok := fields["stock_kg"]; ok {
		t.Error("nil stock_kg must not appear in the form")
	}
	if imageName != "honey.jpg" {
		t.Errorf("image filename = %q", imageName)
	}
}

func TestShipmentsAPIRatesUnwrapsNestedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "110001") {
			t.Errorf("request body missing pincode: %s", body)
		}
		w.Write([]byte(`{"statusCode":200,"status":"success","data":{"status":200,"data":{"available_courier_companies":[{"courier_name":"Speedy","rate":92.5,"etd":"2 days"}]}}}`))
	}, fixedToken("t"))

	rates, err := NewShipmentsAPI(client).Rates(context.Background(), domain.ShippingRateRequest{
		PickupPincode:   "110001",
		DeliveryPincode: "560001",
		Weight:          2,
	})
	if err != nil {
		t.Fatalf("Rates returned error: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	if rates[0].CourierName != "Speedy" || rates[0].Rate != 92.5 {
		t.Errorf("unexpected rate: %+v", rates[0])
	}
}
