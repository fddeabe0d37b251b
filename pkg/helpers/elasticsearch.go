package helpers

import (
	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient initializes an Elasticsearch client, or returns nil when no
// addresses are configured so callers can skip indexing entirely.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
	}
	return elasticsearch.NewClient(cfg)
}
