// Package currency converts amounts between display currencies using cached
// exchange rates. Conversion is purely presentational: it runs after
// balances are computed and never alters the ledger currency. Rate fetch
// failures degrade to cached or default rates so they can never block or
// corrupt a balance computation.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.exchangerate-api.com/v4/latest/"

// Info describes a supported display currency.
type Info struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

var supported = map[string]Info{
	"INR": {Name: "Indian Rupee", Symbol: "₹", Decimals: 2},
	"USD": {Name: "US Dollar", Symbol: "$", Decimals: 2},
	"EUR": {Name: "Euro", Symbol: "€", Decimals: 2},
	"GBP": {Name: "British Pound", Symbol: "£", Decimals: 2},
	"JPY": {Name: "Japanese Yen", Symbol: "¥", Decimals: 0},
	"CAD": {Name: "Canadian Dollar", Symbol: "C$", Decimals: 2},
	"AUD": {Name: "Australian Dollar", Symbol: "A$", Decimals: 2},
	"CHF": {Name: "Swiss Franc", Symbol: "CHF", Decimals: 2},
	"CNY": {Name: "Chinese Yuan", Symbol: "¥", Decimals: 2},
	"SGD": {Name: "Singapore Dollar", Symbol: "S$", Decimals: 2},
}

// defaultRates are fallback rates used when no live rate was ever fetched.
var defaultRates = map[string]map[string]float64{
	"INR": {"USD": 0.012, "EUR": 0.011, "GBP": 0.0095, "JPY": 1.8, "CAD": 0.016, "AUD": 0.018, "CHF": 0.011, "CNY": 0.086, "SGD": 0.016},
	"USD": {"INR": 83.5, "EUR": 0.92, "GBP": 0.79, "JPY": 150, "CAD": 1.35, "AUD": 1.52, "CHF": 0.91, "CNY": 7.2, "SGD": 1.34},
	"EUR": {"INR": 90.8, "USD": 1.09, "GBP": 0.86, "JPY": 163, "CAD": 1.47, "AUD": 1.65, "CHF": 0.99, "CNY": 7.84, "SGD": 1.46},
}

// Conversion is the result of converting one amount.
type Conversion struct {
	OriginalAmount  float64 `json:"original_amount"`
	ConvertedAmount float64 `json:"converted_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
}

// Service caches exchange rates per base currency with a refresh TTL.
// Safe for concurrent use.
type Service struct {
	client  *http.Client
	baseURL string
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	rates   map[string]map[string]float64
	fetched map[string]time.Time
}

// NewService creates a rate service. An empty baseURL uses the public
// exchangerate-api endpoint; a nil client gets a 5 second timeout.
func NewService(baseURL string, client *http.Client) *Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	s := &Service{
		client:  client,
		baseURL: baseURL,
		ttl:     time.Hour,
		now:     time.Now,
		rates:   make(map[string]map[string]float64),
		fetched: make(map[string]time.Time),
	}
	for base, rates := range defaultRates {
		copied := make(map[string]float64, len(rates))
		for k, v := range rates {
			copied[k] = v
		}
		s.rates[base] = copied
	}
	return s
}

// Supported returns the supported-currency table.
func Supported() map[string]Info {
	out := make(map[string]Info, len(supported))
	for k, v := range supported {
		out[k] = v
	}
	return out
}

// InfoFor looks up a currency by code.
func InfoFor(code string) (Info, bool) {
	info, ok := supported[code]
	return info, ok
}

// Format renders an amount with the currency's symbol and decimal places.
func Format(amount float64, code string) string {
	info, ok := supported[code]
	if !ok {
		return fmt.Sprintf("%v", amount)
	}
	return fmt.Sprintf("%s%.*f", info.Symbol, info.Decimals, amount)
}

// Rate returns the exchange rate from one currency to another, refreshing
// stale cached rates from the live endpoint first. When no direct rate is
// known the reverse rate is inverted; when nothing is known at all the rate
// falls back to 1 so callers are never blocked.
func (s *Service) Rate(ctx context.Context, from, to string) float64 {
	if from == to {
		return 1
	}

	s.mu.RLock()
	stale := s.now().Sub(s.fetched[from]) > s.ttl
	s.mu.RUnlock()
	if stale {
		if err := s.Refresh(ctx, from); err != nil {
			slog.Warn("Exchange rate refresh failed, using cached rates", "base", from, "error", err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if rate, ok := s.rates[from][to]; ok && rate > 0 {
		return rate
	}
	if reverse, ok := s.rates[to][from]; ok && reverse > 0 {
		return 1 / reverse
	}
	return 1
}

// Refresh fetches live rates for a base currency and caches them.
func (s *Service) Refresh(ctx context.Context, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+base, nil)
	if err != nil {
		return fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rates endpoint returned %s", resp.Status)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return fmt.Errorf("rates endpoint returned no rates for %s", base)
	}

	s.mu.Lock()
	s.rates[base] = payload.Rates
	s.fetched[base] = s.now()
	s.mu.Unlock()

	slog.Debug("Exchange rates updated", "base", base, "count", len(payload.Rates))
	return nil
}

// Rates returns the cached rate table for a base currency, refreshing it
// first on a best-effort basis.
func (s *Service) Rates(ctx context.Context, base string) (map[string]float64, time.Time) {
	if err := s.Refresh(ctx, base); err != nil {
		slog.Warn("Exchange rate refresh failed, serving cached rates", "base", base, "error", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.rates[base]))
	for k, v := range s.rates[base] {
		out[k] = v
	}
	return out, s.fetched[base]
}

// Convert converts an amount using the given rate, rounded to the target
// currency's decimal places.
func Convert(amount float64, from, to string, rate float64) Conversion {
	if from == to {
		return Conversion{
			OriginalAmount:  amount,
			ConvertedAmount: amount,
			ExchangeRate:    1,
			FromCurrency:    from,
			ToCurrency:      to,
		}
	}

	decimals := 2
	if info, ok := supported[to]; ok {
		decimals = info.Decimals
	}
	converted := amount * rate
	return Conversion{
		OriginalAmount:  amount,
		ConvertedAmount: round(converted, decimals),
		ExchangeRate:    rate,
		FromCurrency:    from,
		ToCurrency:      to,
	}
}

// ConvertLive converts using the current (cached or fresh) rate.
func (s *Service) ConvertLive(ctx context.Context, amount float64, from, to string) Conversion {
	return Convert(amount, from, to, s.Rate(ctx, from, to))
}

func round(v float64, decimals int) float64 {
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	return math.Round(v*shift) / shift
}
