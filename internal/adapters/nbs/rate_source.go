package nbs

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/core/ports"
)

// defaultEndpoint is the national bank's public exchange-rate SOAP service.
const defaultEndpoint = "https://webservices.nbs.rs/CommunicationOfficeService1_0/ExchangeRateXmlService.asmx"

const soapAction = "http://communicationoffice.nbs.rs/GetExchangeRateByDate"

// Config carries the credentials issued with an NBS web-service licence.
type Config struct {
	Endpoint  string
	Username  string
	Password  string
	LicenceID string
	Timeout   time.Duration
}

// RateSource fetches daily middle-rate lists from the NBS SOAP service.
type RateSource struct {
	cfg    Config
	client *http.Client
}

// NewRateSource creates a rate source for the configured NBS account.
func NewRateSource(cfg Config) *RateSource {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &RateSource{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

var _ ports.RateSource = (*RateSource)(nil)

// requestEnvelope is the GetExchangeRateByDate SOAP call. Exchange rate list
// type 3 is the middle-rate list.
const requestEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Header>
    <AuthenticationHeader xmlns="http://communicationoffice.nbs.rs">
      <UserName>%s</UserName>
      <Password>%s</Password>
      <LicenceID>%s</LicenceID>
    </AuthenticationHeader>
  </soap:Header>
  <soap:Body>
    <GetExchangeRateByDate xmlns="http://communicationoffice.nbs.rs">
      <date>%s</date>
      <exchangeRateListTypeID>3</exchangeRateListTypeID>
    </GetExchangeRateByDate>
  </soap:Body>
</soap:Envelope>`

type soapResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result string `xml:"GetExchangeRateByDateResult"`
		} `xml:"GetExchangeRateByDateResponse"`
	} `xml:"Body"`
}

// rateList is the inner XML document the SOAP result wraps as a string.
type rateList struct {
	XMLName xml.Name `xml:"ExchangeRateDataSet"`
	Rates   []struct {
		CurrencyCode string `xml:"CurrencyCodeAlfaChar"`
		Unit         string `xml:"Unit"`
		MiddleRate   string `xml:"MiddleRate"`
	} `xml:"ExchangeRate"`
}

// FetchDailyRates fetches the middle-rate list for the given date. Only the
// supported currencies are returned, each normalised to a per-unit rate with
// four decimal places.
func (s *RateSource) FetchDailyRates(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	envelope := fmt.Sprintf(requestEnvelope, s.cfg.Username, s.cfg.Password, s.cfg.LicenceID, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewBufferString(envelope))
	if err != nil {
		return nil, fmt.Errorf("build nbs request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call nbs service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nbs service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read nbs response: %w", err)
	}

	var envelopeResp soapResponse
	if err := xml.Unmarshal(body, &envelopeResp); err != nil {
		return nil, fmt.Errorf("decode nbs envelope: %w", err)
	}
	if envelopeResp.Body.Response.Result == "" {
		return nil, fmt.Errorf("nbs returned an empty rate list for %s", date.Format("2006-01-02"))
	}

	return parseRateList(envelopeResp.Body.Response.Result)
}

// parseRateList decodes the inner rate-list document. The service quotes rates
// per Unit currency units and uses a decimal comma.
func parseRateList(doc string) (map[string]decimal.Decimal, error) {
	var list rateList
	if err := xml.Unmarshal([]byte(doc), &list); err != nil {
		return nil, fmt.Errorf("decode nbs rate list: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(domain.ForeignCurrencies))
	for _, r := range list.Rates {
		if !domain.IsForeignCurrency(r.CurrencyCode) {
			continue
		}
		raw := strings.ReplaceAll(strings.TrimSpace(r.MiddleRate), ",", ".")
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse middle rate %q for %s: %w", r.MiddleRate, r.CurrencyCode, err)
		}
		unit := decimal.NewFromInt(1)
		if u := strings.TrimSpace(r.Unit); u != "" && u != "1" {
			parsed, uerr := decimal.NewFromString(u)
			if uerr != nil {
				return nil, fmt.Errorf("parse unit %q for %s: %w", r.Unit, r.CurrencyCode, uerr)
			}
			unit = parsed
		}
		rates[r.CurrencyCode] = rate.Div(unit).Round(4)
	}
	return rates, nil
}
