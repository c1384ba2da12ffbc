package striperepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookcourier/util/httpx"
)

const apiBase = "https://api.stripe.com/v1"

// Checkout session creation is the slowest call we make against Stripe.
const stripeTimeout = 15 * time.Second

type httpRepo struct {
	apiKey string
	base   string
	client *http.Client
}

func NewHTTP(apiKey string) Repo {
	return &httpRepo{apiKey: apiKey, base: apiBase, client: httpx.WithTimeout(stripeTimeout)}
}

// NewHTTPWithBase points the repo at a different API host; used by tests.
func NewHTTPWithBase(apiKey, base string) Repo {
	return &httpRepo{apiKey: apiKey, base: base, client: httpx.WithTimeout(stripeTimeout)}
}

func (r *httpRepo) CreateCheckoutSession(ctx context.Context, req CreateSessionReq) (*CreateSessionResp, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", req.CustomerEmail)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("metadata[orderId]", req.OrderID)
	form.Set("metadata[bookName]", req.BookName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.base+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe create session failed: %s", resp.Status)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty session id")
	}
	return &CreateSessionResp{SessionID: out.ID, URL: out.URL}, nil
}

func (r *httpRepo) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.base+"/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe retrieve session failed: %s", resp.Status)
	}

	var out struct {
		PaymentIntent   string `json:"payment_intent"`
		PaymentStatus   string `json:"payment_status"`
		AmountTotal     int64  `json:"amount_total"`
		CustomerEmail   string `json:"customer_email"`
		CustomerDetails struct {
			Email string `json:"email"`
		} `json:"customer_details"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	email := out.CustomerEmail
	if email == "" {
		email = out.CustomerDetails.Email
	}
	return &Session{
		PaymentIntentID: out.PaymentIntent,
		PaymentStatus:   out.PaymentStatus,
		AmountTotal:     out.AmountTotal,
		CustomerEmail:   email,
		OrderID:         out.Metadata["orderId"],
		BookName:        out.Metadata["bookName"],
	}, nil
}
