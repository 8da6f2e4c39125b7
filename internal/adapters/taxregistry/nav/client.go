package nav

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"webshoptech/szamlabridge/internal/core/taxregistry"
	"webshoptech/szamlabridge/internal/infrastructure/cache"
)

const taxpayerPath = "/szamla/agent/taxpayer"

// ErrTaxpayerInvalid is returned when NAV knows the VAT number but reports
// it as not valid.
var ErrTaxpayerInvalid = errors.New("taxpayer is not valid")

// CredentialSource yields the agent key used to authenticate the query.
type CredentialSource interface {
	AgentKey() string
}

// Client queries the national tax registry through the agent's taxpayer
// endpoint and caches answers per VAT number.
type Client struct {
	rest  *resty.Client
	creds CredentialSource
	cache *cache.TaxpayerCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewClient creates a registry client. Lookups hit the remote endpoint at
// most once per VAT number within the cache TTL.
func NewClient(baseURL string, timeout time.Duration, creds CredentialSource, ttl time.Duration, log *slog.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{
		rest:  rest,
		creds: creds,
		cache: cache.NewTaxpayerCache(),
		ttl:   ttl,
		log:   log,
	}
}

var _ taxregistry.Service = (*Client)(nil)

// LookupTaxpayer returns the registry record for the given VAT number.
func (c *Client) LookupTaxpayer(ctx context.Context, vatNumber string) (*taxregistry.TaxpayerRecord, error) {
	if rec, ok := c.cache.Get(vatNumber); ok {
		c.log.Debug("taxpayer cache hit", "vat_number", vatNumber)
		return rec, nil
	}

	payload := xmlTaxpayerRequest{
		Settings: xmlSettings{AgentKey: c.creds.AgentKey()},
		TaxID:    vatNumber,
	}

	body, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal taxpayer request: %w", err)
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetBody(append([]byte(xml.Header), body...)).
		Post(taxpayerPath)
	if err != nil {
		return nil, fmt.Errorf("execute taxpayer request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("taxpayer request status: %d", resp.StatusCode())
	}

	rec, err := parseTaxpayerResponse(resp.Body())
	if err != nil {
		return nil, err
	}

	c.cache.Set(vatNumber, *rec, c.ttl)
	return rec, nil
}

// parseTaxpayerResponse decodes NAV's QueryTaxpayerResponse into a
// registry record. The headquarters address wins when NAV returns more
// than one address item.
func parseTaxpayerResponse(body []byte) (*taxregistry.TaxpayerRecord, error) {
	var resp xmlQueryTaxpayerResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse taxpayer response: %w", err)
	}

	if !resp.Validity {
		return nil, ErrTaxpayerInvalid
	}

	rec := &taxregistry.TaxpayerRecord{
		ShortName:  resp.Data.ShortName,
		FullName:   resp.Data.Name,
		TaxpayerID: resp.Data.TaxNumber.TaxpayerID,
		VATCode:    resp.Data.TaxNumber.VATCode,
		CountyCode: resp.Data.TaxNumber.CountyCode,
	}

	if addr, ok := pickAddress(resp.Data.Addresses); ok {
		rec.PostalCode = addr.PostalCode
		rec.City = addr.City
		rec.StreetName = addr.StreetName
		rec.PublicPlaceCategory = addr.PublicPlaceCategory
		rec.HouseNumber = addr.Number
		rec.Door = addr.Door
	}

	return rec, nil
}

func pickAddress(items []xmlAddressItem) (xmlAddress, bool) {
	if len(items) == 0 {
		return xmlAddress{}, false
	}
	for _, item := range items {
		if item.Type == "HQ" {
			return item.Address, true
		}
	}
	return items[0].Address, true
}
