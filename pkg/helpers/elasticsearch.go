package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchBackend bundles the Elasticsearch client with the index that offer
// documents are written to. A nil backend disables indexing and search.
type SearchBackend struct {
	Client      *elasticsearch.Client
	OffersIndex string
}

// NewSearchBackend dials Elasticsearch with optional basic auth and binds
// the offers index name.
func NewSearchBackend(addrs []string, username, password, offersIndex string) (*SearchBackend, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &SearchBackend{Client: client, OffersIndex: offersIndex}, nil
}
