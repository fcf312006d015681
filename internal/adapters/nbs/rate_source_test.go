package nbs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetExchangeRateByDateResponse xmlns="http://communicationoffice.nbs.rs">
      <GetExchangeRateByDateResult>&lt;ExchangeRateDataSet&gt;&lt;ExchangeRate&gt;&lt;CurrencyCodeAlfaChar&gt;EUR&lt;/CurrencyCodeAlfaChar&gt;&lt;Unit&gt;1&lt;/Unit&gt;&lt;MiddleRate&gt;117,5432&lt;/MiddleRate&gt;&lt;/ExchangeRate&gt;&lt;ExchangeRate&gt;&lt;CurrencyCodeAlfaChar&gt;JPY&lt;/CurrencyCodeAlfaChar&gt;&lt;Unit&gt;100&lt;/Unit&gt;&lt;MiddleRate&gt;74,1200&lt;/MiddleRate&gt;&lt;/ExchangeRate&gt;&lt;ExchangeRate&gt;&lt;CurrencyCodeAlfaChar&gt;CHF&lt;/CurrencyCodeAlfaChar&gt;&lt;Unit&gt;1&lt;/Unit&gt;&lt;MiddleRate&gt;124,9000&lt;/MiddleRate&gt;&lt;/ExchangeRate&gt;&lt;/ExchangeRateDataSet&gt;</GetExchangeRateByDateResult>
    </GetExchangeRateByDateResponse>
  </soap:Body>
</soap:Envelope>`

func TestFetchDailyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	source := NewRateSource(Config{
		Endpoint:  server.URL,
		Username:  "user",
		Password:  "pass",
		LicenceID: "licence",
	})

	rates, err := source.FetchDailyRates(context.Background(), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// JPY is not a supported currency and must be filtered out.
	require.Len(t, rates, 2)
	assert.True(t, decimal.RequireFromString("117.5432").Equal(rates["EUR"]), "got %s", rates["EUR"])
	assert.True(t, decimal.RequireFromString("124.9000").Equal(rates["CHF"]), "got %s", rates["CHF"])
}

func TestFetchDailyRatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewRateSource(Config{Endpoint: server.URL})

	_, err := source.FetchDailyRates(context.Background(), time.Now())
	require.Error(t, err)
}

func TestParseRateListCommaDecimalsAndUnits(t *testing.T) {
	doc := `<ExchangeRateDataSet>
  <ExchangeRate><CurrencyCodeAlfaChar>USD</CurrencyCodeAlfaChar><Unit>1</Unit><MiddleRate>108,2000</MiddleRate></ExchangeRate>
  <ExchangeRate><CurrencyCodeAlfaChar>GBP</CurrencyCodeAlfaChar><Unit>1</Unit><MiddleRate>136,0150</MiddleRate></ExchangeRate>
</ExchangeRateDataSet>`

	rates, err := parseRateList(doc)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, decimal.RequireFromString("108.2000").Equal(rates["USD"]))
	assert.True(t, decimal.RequireFromString("136.0150").Equal(rates["GBP"]))
}

func TestParseRateListBadNumber(t *testing.T) {
	doc := `<ExchangeRateDataSet>
  <ExchangeRate><CurrencyCodeAlfaChar>EUR</CurrencyCodeAlfaChar><Unit>1</Unit><MiddleRate>not-a-number</MiddleRate></ExchangeRate>
</ExchangeRateDataSet>`

	_, err := parseRateList(doc)
	require.Error(t, err)
}
