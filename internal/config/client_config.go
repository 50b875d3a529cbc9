package config

import (
	"time"

	"github.com/spf13/viper"
)

type ClientConfig interface {
	GetMaxConcurrentRequests() int
	GetSearchDebounce() time.Duration
	GetMinSearchLength() int
	GetSearchCacheTTL() time.Duration
	GetDetailCacheTTL() time.Duration
	GetRequestTimeout() time.Duration
}

type Client struct {
	v *viper.Viper
}

var _ ClientConfig = Client{}

func (c Client) GetMaxConcurrentRequests() int {
	return getIntOrDefault(c.v, "client.maxConcurrent", 5)
}

func (c Client) GetSearchDebounce() time.Duration {
	return getDurationOrDefault(c.v, "client.searchDebounce", 300*time.Millisecond)
}

func (c Client) GetMinSearchLength() int {
	return getIntOrDefault(c.v, "client.minSearchLength", 2)
}

// GetSearchCacheTTL is kept short since search-as-you-type results go stale quickly.
func (c Client) GetSearchCacheTTL() time.Duration {
	return getDurationOrDefault(c.v, "client.searchTTL", time.Minute)
}

func (c Client) GetDetailCacheTTL() time.Duration {
	return getDurationOrDefault(c.v, "client.detailTTL", 5*time.Minute)
}

// GetRequestTimeout bounds a single HTTP round trip. Zero disables the timeout.
func (c Client) GetRequestTimeout() time.Duration {
	return getDurationOrDefault(c.v, "client.timeout", 30*time.Second)
}
