package llm

import (
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"shoptalk/internal/proxy"
)

// NewClient builds the OpenAI client. proxyAddr, when non-empty, routes all
// API traffic through a SOCKS5 proxy.
func NewClient(apiKey, proxyAddr string) (openai.Client, error) {
	if apiKey == "" {
		return openai.Client{}, errors.New("OPENAI_API_KEY not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if proxyAddr != "" {
		httpClient, err := proxy.NewSocksClient(proxyAddr)
		if err != nil {
			return openai.Client{}, fmt.Errorf("dial socks proxy %s: %w", proxyAddr, err)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return openai.NewClient(opts...), nil
}
