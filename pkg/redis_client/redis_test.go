package redis_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	options, err := clientOptions(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", options.Addr)
	assert.Equal(t, 0, options.DB)

	options, err = clientOptions(map[string]string{
		"COMMUTE_REDIS_ADDRESS":  "redis:6379",
		"COMMUTE_REDIS_PASSWORD": "secret",
		"COMMUTE_REDIS_DATABASE": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", options.Addr)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 3, options.DB)

	_, err = clientOptions(map[string]string{"COMMUTE_REDIS_DATABASE": "three"})
	assert.Error(t, err)
}
