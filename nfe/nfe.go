// Package nfe turns NFe fiscal document summaries into import candidates.
//
// It understands the feed shape of the document portal: a JSON object with a
// "documentos" array, each document carrying its number, access key, the
// counterparty name, the issue date, the total amount and whether the
// document was received (a purchase to pay) or issued (a sale to collect).
package nfe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/finco/finco"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches document summaries from the fiscal document portal.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the given portal address.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: new(http.Client)}
}

// Fetch retrieves the documents issued in a period and normalizes them into
// import candidates.
func (c *Client) Fetch(ctx context.Context, period finco.Range) ([]finco.ImportCandidate, error) {
	addr := fmt.Sprintf("%s?from=%s&to=%s", c.BaseURL,
		url.QueryEscape(period.From.String()), url.QueryEscape(period.To.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch documents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch documents from %s: %s", resp.Request.URL.Host, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return Parse(buf.Bytes())
}

// Load reads a feed export from a local file or stream.
func Load(r io.Reader) ([]finco.ImportCandidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a feed document into import candidates.
func Parse(data []byte) ([]finco.ImportCandidate, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("feed is not valid json: %w", err)
	}

	// Resolve the array itself, not a wildcard over it: a wildcard silently
	// yields an empty result when the key is missing.
	jval, err := jsonpath.Get("$.documentos", jobj)
	if err != nil {
		return nil, fmt.Errorf("feed has no documentos array: %w", err)
	}
	jdocs, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("feed documentos is not an array")
	}

	candidates := make([]finco.ImportCandidate, 0, len(jdocs))
	for i, jdoc := range jdocs {
		c, err := parseDocument(jdoc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func parseDocument(jdoc any) (finco.ImportCandidate, error) {
	doc, ok := jdoc.(map[string]any)
	if !ok {
		return finco.ImportCandidate{}, fmt.Errorf("not a json object")
	}

	var c finco.ImportCandidate
	c.DocumentNumber = stringField(doc, "numero")
	c.SourceKey = stringField(doc, "chave")
	c.Label = stringField(doc, "contraparte")

	if s := stringField(doc, "dataEmissao"); s != "" {
		day, err := finco.ParseDate(s)
		if err != nil {
			return c, err
		}
		c.Date = day
	}

	amount, err := amountField(doc, "valor")
	if err != nil {
		return c, err
	}
	c.Amount = amount

	// A received document is a purchase to pay, an issued one a sale to
	// collect.
	switch strings.ToUpper(stringField(doc, "tipo")) {
	case "RECEBIDA":
		c.Direction = finco.Outflow
	case "EMITIDA":
		c.Direction = finco.Inflow
	default:
		return c, fmt.Errorf("unknown document tipo %q", stringField(doc, "tipo"))
	}
	return c, nil
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return strings.TrimSpace(s)
}

// amountField reads a monetary value. The portal sometimes returns amounts
// as strings with a decimal comma.
func amountField(doc map[string]any, key string) (finco.Money, error) {
	switch v := doc[key].(type) {
	case float64:
		return finco.M(v), nil
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, ",") {
			// Brazilian format: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return finco.Money{}, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		return finco.M(val), nil
	case nil:
		return finco.Money{}, fmt.Errorf("missing %s", key)
	default:
		return finco.Money{}, fmt.Errorf("invalid %s type %T", key, v)
	}
}
