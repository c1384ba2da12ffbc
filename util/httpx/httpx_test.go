package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_SharedInstance(t *testing.T) {
	require.Same(t, Client(), Client())
	require.Equal(t, defaultTimeout, Client().Timeout)
}

func TestWithTimeout_SharesTransport(t *testing.T) {
	c := WithTimeout(15 * time.Second)
	require.Equal(t, 15*time.Second, c.Timeout)
	require.Same(t, Client().Transport, c.Transport)
}

func TestWithTimeout_ZeroFallsBackToDefault(t *testing.T) {
	require.Equal(t, defaultTimeout, WithTimeout(0).Timeout)
}
