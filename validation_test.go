package ocpay

import (
	"errors"
	"strings"
	"testing"
)

func TestNewProductInfoAmountBounds(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		wantErr     bool
		wantMessage string
	}{
		{name: "lower bound", amount: 500},
		{name: "upper bound", amount: 500000},
		{name: "mid range", amount: 4999},
		{name: "just below", amount: 499, wantErr: true, wantMessage: "too small"},
		{name: "zero", amount: 0, wantErr: true, wantMessage: "too small"},
		{name: "negative", amount: -500, wantErr: true, wantMessage: "too small"},
		{name: "just above", amount: 500001, wantErr: true, wantMessage: "too large"},
		{name: "way above", amount: 10000000, wantErr: true, wantMessage: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProductInfo("Widget", tt.amount, "")
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				if p.Amount != tt.amount {
					t.Errorf("expected amount %d, got %d", tt.amount, p.Amount)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Field != "productInfo.amount" {
				t.Errorf("expected field productInfo.amount, got %s", vErr.Field)
			}
			if !strings.Contains(vErr.Message, tt.wantMessage) {
				t.Errorf("expected message containing %q, got %q", tt.wantMessage, vErr.Message)
			}
		})
	}
}

func TestNewProductInfoFromDecimal(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		wantAmount int64
		wantErr    bool
	}{
		{name: "rounds up into range", amount: 499.99, wantAmount: 500},
		{name: "rounds up out of range", amount: 500000.6, wantErr: true},
		{name: "rounds down within range", amount: 500000.4, wantAmount: 500000},
		{name: "half rounds away from zero", amount: 1000.5, wantAmount: 1001},
		{name: "exact integer", amount: 750, wantAmount: 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProductInfoFromDecimal("Widget", tt.amount, "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if p.Amount != tt.wantAmount {
				t.Errorf("expected amount %d, got %d", tt.wantAmount, p.Amount)
			}
		})
	}
}

func TestNewProductInfoTitleAndDescription(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantField   string
	}{
		{name: "valid", title: "Widget", description: "A fine widget"},
		{name: "max length title", title: strings.Repeat("a", 200)},
		{name: "empty title", title: "", wantField: "productInfo.title"},
		{name: "overlong title", title: strings.Repeat("a", 201), wantField: "productInfo.title"},
		{name: "max length description", title: "Widget", description: strings.Repeat("d", 1000)},
		{name: "overlong description", title: "Widget", description: strings.Repeat("d", 1001), wantField: "productInfo.description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProductInfo(tt.title, 1000, tt.description)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestNewLinkCreationRequest(t *testing.T) {
	product := ProductInfo{Title: "Widget", Amount: 1000}

	t.Run("defaults fee mode", func(t *testing.T) {
		req, err := NewLinkCreationRequest(product, "", "", "")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if req.FeeMode != FeeModeNoFee {
			t.Errorf("expected default fee mode %s, got %s", FeeModeNoFee, req.FeeMode)
		}
	})

	t.Run("rejects unknown fee mode", func(t *testing.T) {
		_, err := NewLinkCreationRequest(product, "MERCHANT_FEE", "", "")
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "feeMode" {
			t.Fatalf("expected feeMode validation error, got %v", err)
		}
	})

	t.Run("rejects nested product violations", func(t *testing.T) {
		_, err := NewLinkCreationRequest(ProductInfo{Title: "Widget", Amount: 1}, FeeModeNoFee, "", "")
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "productInfo.amount" {
			t.Fatalf("expected productInfo.amount validation error, got %v", err)
		}
	})

	t.Run("rejects overlong success message", func(t *testing.T) {
		_, err := NewLinkCreationRequest(product, FeeModeNoFee, strings.Repeat("s", 501), "")
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "successMessage" {
			t.Fatalf("expected successMessage validation error, got %v", err)
		}
	})
}

func TestRedirectURLValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty is allowed", url: ""},
		{name: "https", url: "https://example.com/ok"},
		{name: "http", url: "http://example.com/ok"},
		{name: "not a url", url: "not-a-url", wantErr: true},
		{name: "relative path", url: "/relative/path", wantErr: true},
		{name: "missing host", url: "https://", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/file", wantErr: true},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: true},
	}

	product := ProductInfo{Title: "Widget", Amount: 1000}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinkCreationRequest(product, FeeModeNoFee, "", tt.url)
			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) || vErr.Field != "redirectUrl" {
					t.Fatalf("expected redirectUrl validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestFeeModeValid(t *testing.T) {
	for _, mode := range []FeeMode{FeeModeNoFee, FeeModeSplitFee, FeeModeCustomerFee} {
		if !mode.Valid() {
			t.Errorf("expected %s to be valid", mode)
		}
	}
	for _, mode := range []FeeMode{"", "no_fee", "FULL_FEE"} {
		if mode.Valid() {
			t.Errorf("expected %q to be invalid", mode)
		}
	}
}
