package elastic_client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig(t *testing.T) {
	_, ok := clientConfig(map[string]string{})
	assert.False(t, ok)

	config, ok := clientConfig(map[string]string{
		"COMMUTE_ELASTICSEARCH_ADDRESS":  "http://search:9200",
		"COMMUTE_ELASTICSEARCH_USERNAME": "commute",
		"COMMUTE_ELASTICSEARCH_PASSWORD": "secret",
	})
	require.True(t, ok)
	assert.Equal(t, []string{"http://search:9200"}, config.Addresses)
	assert.Equal(t, "commute", config.Username)
	assert.Equal(t, 5, config.MaxRetries)

	first := config.RetryBackoff(1)
	assert.Greater(t, first, time.Duration(0))
	assert.Greater(t, config.RetryBackoff(2), time.Duration(0))
}

func TestConnectWithoutConfiguration(t *testing.T) {
	t.Setenv("COMMUTE_ELASTICSEARCH_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.ErrorIs(t, Connect(true), ErrNotConfigured)
}
