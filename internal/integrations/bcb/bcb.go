package bcb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// SelicRate is one observation of the Selic series
type SelicRate struct {
	Date  string  `json:"date"`
	Value float64 `json:"selic_rate"`
}

// BCBClient handles integration with Banco Central do Brasil
type BCBClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewBCBClient initializes a new BCB client
func NewBCBClient(cfg *config.Config, log *logrus.Logger) *BCBClient {
	return &BCBClient{
		url: cfg.BCBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// sendRequest fetches the SGS series as XML
func (c *BCBClient) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("BCB XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the most recent item of the series
func (c *BCBClient) parseXMLResponse(rawBody []byte) (*SelicRate, error) {
	doc := etree.NewDocument()
	// SGS declares ISO-8859-1; dates and values are plain ASCII.
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	items := doc.FindElements("//item")
	if len(items) == 0 {
		return nil, fmt.Errorf("no Selic data found in XML")
	}

	latest := items[len(items)-1]
	valueElement := latest.FindElement("./valor")
	if valueElement == nil {
		return nil, fmt.Errorf("valor element not found in XML")
	}

	text := strings.ReplaceAll(strings.TrimSpace(valueElement.Text()), ",", ".")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate: %w", err)
	}

	rate := &SelicRate{Value: value}
	if dateElement := latest.FindElement("./data"); dateElement != nil {
		rate.Date = strings.TrimSpace(dateElement.Text())
	}
	return rate, nil
}

// GetSelicRate retrieves the latest Selic target rate
func (c *BCBClient) GetSelicRate(ctx context.Context) (*SelicRate, error) {
	body, err := c.sendRequest(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved Selic rate: %.2f%% (%s)", rate.Value, rate.Date)
	return rate, nil
}
