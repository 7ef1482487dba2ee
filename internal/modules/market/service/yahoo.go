package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

// Yahoo: клиент chart API (v8/finance/chart).
type Yahoo struct {
	baseURL    string
	strikeStep float64

	http    *http.Client
	limiter *rate.Limiter
}

func NewYahoo(baseURL string, strikeStep, ratePerSec float64, timeout time.Duration) *Yahoo {
	if ratePerSec <= 0 {
		ratePerSec = 2
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Yahoo{
		baseURL:    strings.TrimRight(baseURL, "/"),
		strikeStep: strikeStep,
		http:       &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (y *Yahoo) chart(ctx context.Context, symbol, lookback, interval string) (*chartResult, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		y.baseURL, url.PathEscape(symbol), url.QueryEscape(lookback), url.QueryEscape(helper.NormInterval(interval)),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build chart request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "chart %s", symbol)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read chart %s", symbol)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("chart %s: http %d: %s", symbol, resp.StatusCode, string(b))
	}

	var r chartResponse
	if err := sonic.Unmarshal(b, &r); err != nil {
		return nil, errors.Wrapf(err, "decode chart %s", symbol)
	}
	if r.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s: %s", symbol, r.Chart.Error.Code, r.Chart.Error.Description)
	}
	if len(r.Chart.Result) == 0 {
		return nil, ErrNoData
	}
	return &r.Chart.Result[0], nil
}

// Series тянет свечи и проставляет каждой страйк = close, округлённый к шагу.
func (y *Yahoo) Series(ctx context.Context, symbol, lookback, interval string) (models.Series, error) {
	res, err := y.chart(ctx, symbol, lookback, interval)
	if err != nil {
		return models.Series{}, err
	}
	if len(res.Indicators.Quote) == 0 {
		return models.Series{}, ErrNoData
	}
	q := res.Indicators.Quote[0]

	out := models.Series{Symbol: symbol, Interval: interval}
	for i, ts := range res.Timestamp {
		o, h, l, c := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		// пустые свечи (вне сессии) приходят null
		if o == nil || h == nil || l == nil || c == nil || *c <= 0 {
			continue
		}
		var vol float64
		if v := at(q.Volume, i); v != nil {
			vol = *v
		}
		out.Bars = append(out.Bars, models.Bar{
			Time:   time.Unix(ts, 0),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: vol,
			Strike: helper.RoundToStep(*c, y.strikeStep),
		})
	}
	if out.Empty() {
		return out, ErrNoData
	}
	return out, nil
}

// Price: последняя цена индекса. Уровни сделки считаются от закрытия индекса,
// поэтому strike и dir здесь не нужны.
func (y *Yahoo) Price(ctx context.Context, symbol string, _ float64, _ models.Direction) (float64, error) {
	res, err := y.chart(ctx, symbol, "1d", "1m")
	if err != nil {
		return 0, err
	}
	if res.Meta.RegularMarketPrice <= 0 {
		return 0, ErrNoData
	}
	return res.Meta.RegularMarketPrice, nil
}

func at(xs []*float64, i int) *float64 {
	if i < 0 || i >= len(xs) {
		return nil
	}
	return xs[i]
}
