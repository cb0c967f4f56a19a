package iogenome

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/genome"
)

// Tool identifies virotaxa in E-utilities requests.
const Tool = "virotaxa"

type eutils struct {
	baseURL string
	email   string
	apiKey  string
	client  *http.Client
}

// NewEutils creates a Fetcher that uses NCBI E-utilities. Accessions
// are posted to the history server with EPost and downloaded with
// EFetch.
func NewEutils(cfg config.NCBIConfig) genome.Fetcher {
	return &eutils{
		baseURL: cfg.BaseURL,
		email:   cfg.Email,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type epostResult struct {
	XMLName  xml.Name `xml:"ePostResult"`
	QueryKey string   `xml:"QueryKey"`
	WebEnv   string   `xml:"WebEnv"`
	Error    string   `xml:"ERROR"`
}

func (e *eutils) params() url.Values {
	res := url.Values{}
	res.Set("db", "nucleotide")
	res.Set("tool", Tool)
	if e.email != "" {
		res.Set("email", e.email)
	}
	if e.apiKey != "" {
		res.Set("api_key", e.apiKey)
	}
	return res
}

func (e *eutils) FetchFASTA(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}

	post, err := e.epost(ctx, ids)
	if err != nil {
		return "", err
	}

	vals := e.params()
	vals.Set("rettype", "fasta")
	vals.Set("retmode", "text")
	vals.Set("WebEnv", post.WebEnv)
	vals.Set("query_key", post.QueryKey)

	body, err := e.do(ctx, http.MethodGet, "efetch.fcgi", vals)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (e *eutils) epost(ctx context.Context, ids []string) (*epostResult, error) {
	vals := e.params()
	vals.Set("id", strings.Join(ids, ","))

	body, err := e.do(ctx, http.MethodPost, "epost.fcgi", vals)
	if err != nil {
		return nil, err
	}

	var res epostResult
	if err = xml.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("cannot parse EPost response: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("EPost error: %s", res.Error)
	}
	if res.WebEnv == "" || res.QueryKey == "" {
		return nil, errors.New("EPost response has no WebEnv or QueryKey")
	}
	return &res, nil
}

func (e *eutils) do(
	ctx context.Context,
	method, endpoint string,
	vals url.Values,
) ([]byte, error) {
	u := e.baseURL + endpoint

	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(
			ctx, method, u, strings.NewReader(vals.Encode()),
		)
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u+"?"+vals.Encode(), nil)
	}
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
