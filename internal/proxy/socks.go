// Package proxy builds HTTP clients that tunnel through a SOCKS5 proxy, for
// deployments where the OpenAI API is only reachable that way.
package proxy

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// requestTimeout is generous: a tool-calling turn can take a while.
const requestTimeout = 120 * time.Second

func NewSocksClient(socksAddr string) (*http.Client, error) {
	dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}

	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}, nil
}
