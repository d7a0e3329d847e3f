package ocpay

import (
	"fmt"
	"math"
	"net/url"
	"unicode/utf8"
)

// NewProductInfo validates and builds a ProductInfo. The description may be
// empty. Invalid values fail construction; nothing is clamped.
func NewProductInfo(title string, amount int64, description string) (*ProductInfo, error) {
	p := &ProductInfo{
		Title:       title,
		Amount:      amount,
		Description: description,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProductInfoFromDecimal accepts a fractional amount, rounds it to the
// nearest whole unit (half away from zero), then applies the same validation
// as NewProductInfo. A decimal that rounds into range succeeds even when the
// raw value sat just outside it.
func NewProductInfoFromDecimal(title string, amount float64, description string) (*ProductInfo, error) {
	return NewProductInfo(title, int64(math.Round(amount)), description)
}

// Validate checks every ProductInfo constraint. Violations are reported one
// at a time so each corrected field is independently re-checkable.
func (p *ProductInfo) Validate() error {
	if p.Title == "" {
		return &ValidationError{
			Field:   "productInfo.title",
			Value:   p.Title,
			Message: "title must not be empty",
		}
	}
	if n := utf8.RuneCountInString(p.Title); n > MaxTitleLength {
		return &ValidationError{
			Field:   "productInfo.title",
			Value:   p.Title,
			Message: fmt.Sprintf("title must be at most %d characters, got %d", MaxTitleLength, n),
		}
	}
	if p.Amount < MinAmount {
		return &ValidationError{
			Field:   "productInfo.amount",
			Value:   p.Amount,
			Message: fmt.Sprintf("amount is too small, minimum is %d", MinAmount),
		}
	}
	if p.Amount > MaxAmount {
		return &ValidationError{
			Field:   "productInfo.amount",
			Value:   p.Amount,
			Message: fmt.Sprintf("amount is too large, maximum is %d", MaxAmount),
		}
	}
	if n := utf8.RuneCountInString(p.Description); n > MaxDescriptionLength {
		return &ValidationError{
			Field:   "productInfo.description",
			Value:   p.Description,
			Message: fmt.Sprintf("description must be at most %d characters, got %d", MaxDescriptionLength, n),
		}
	}
	return nil
}

// NewLinkCreationRequest validates and builds a LinkCreationRequest. An empty
// feeMode defaults to NO_FEE. successMessage and redirectURL may be empty.
func NewLinkCreationRequest(product ProductInfo, feeMode FeeMode, successMessage, redirectURL string) (*LinkCreationRequest, error) {
	if feeMode == "" {
		feeMode = FeeModeNoFee
	}
	r := &LinkCreationRequest{
		Product:        product,
		FeeMode:        feeMode,
		SuccessMessage: successMessage,
		RedirectURL:    redirectURL,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks every LinkCreationRequest constraint, including the nested
// product. The client runs this before any network call, so requests built as
// struct literals get the same guarantees as constructor-built ones.
func (r *LinkCreationRequest) Validate() error {
	if err := r.Product.Validate(); err != nil {
		return err
	}
	if !r.FeeMode.Valid() {
		return &ValidationError{
			Field:   "feeMode",
			Value:   r.FeeMode,
			Message: fmt.Sprintf("feeMode must be one of %s, %s, %s", FeeModeNoFee, FeeModeSplitFee, FeeModeCustomerFee),
		}
	}
	if n := utf8.RuneCountInString(r.SuccessMessage); n > MaxSuccessMessageLength {
		return &ValidationError{
			Field:   "successMessage",
			Value:   r.SuccessMessage,
			Message: fmt.Sprintf("successMessage must be at most %d characters, got %d", MaxSuccessMessageLength, n),
		}
	}
	if r.RedirectURL != "" {
		if err := validateRedirectURL(r.RedirectURL); err != nil {
			return err
		}
	}
	return nil
}

func validateRedirectURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{
			Field:   "redirectUrl",
			Value:   raw,
			Message: "redirectUrl must be an absolute http or https URL",
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{
			Field:   "redirectUrl",
			Value:   raw,
			Message: fmt.Sprintf("redirectUrl scheme must be http or https, got %q", u.Scheme),
		}
	}
	return nil
}
