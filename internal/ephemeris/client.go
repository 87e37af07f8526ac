// Package ephemeris fetches sidereal positions from a remote ephemeris
// service. It satisfies panchang.PositionSource.
package ephemeris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zapponejosh/panchang-api/internal/panchang"
)

const defaultTimeout = 5 * time.Second

// ErrBadPosition is returned when the service answers with a value outside
// [0, 360) or a non-finite number.
var ErrBadPosition = errors.New("ephemeris position out of range")

// Client queries GET {base}/positions?jd=<julian day>.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client. A non-positive timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type positionsResponse struct {
	SunLongitude  *float64 `json:"sun_longitude"`
	MoonLongitude *float64 `json:"moon_longitude"`
	Ayanamsa      *float64 `json:"ayanamsa"`
}

// Positions fetches sidereal sun and moon longitudes and the ayanamsa for jd.
func (c *Client) Positions(ctx context.Context, jd float64) (panchang.Positions, error) {
	if c.baseURL == "" {
		return panchang.Positions{}, errors.New("ephemeris base url not configured")
	}
	endpoint := fmt.Sprintf("%s/positions?jd=%s", c.baseURL, strconv.FormatFloat(jd, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return panchang.Positions{}, fmt.Errorf("build ephemeris request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return panchang.Positions{}, fmt.Errorf("ephemeris request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return panchang.Positions{}, fmt.Errorf("ephemeris request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw positionsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&raw); err != nil {
		return panchang.Positions{}, fmt.Errorf("decode ephemeris response: %w", err)
	}

	sun, err := checkDegrees("sun_longitude", raw.SunLongitude)
	if err != nil {
		return panchang.Positions{}, err
	}
	moon, err := checkDegrees("moon_longitude", raw.MoonLongitude)
	if err != nil {
		return panchang.Positions{}, err
	}
	ayanamsa, err := checkDegrees("ayanamsa", raw.Ayanamsa)
	if err != nil {
		return panchang.Positions{}, err
	}

	return panchang.Positions{
		SunLongitude:  sun,
		MoonLongitude: moon,
		Ayanamsa:      ayanamsa,
	}, nil
}

func checkDegrees(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s missing", ErrBadPosition, field)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 || *v >= 360 {
		return 0, fmt.Errorf("%w: %s=%v", ErrBadPosition, field, *v)
	}
	return *v, nil
}
