package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := []byte("MyNewActivity-3.8.5.fit content")
	b := []byte("MyNewActivity-3.8.6.fit content")

	require.Equal(t, Fingerprint(a), Fingerprint(a))
	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintString(t *testing.T) {
	s := FingerprintString([]byte("abc"))
	require.Len(t, s, 16)
	require.Equal(t, s, FingerprintString([]byte("abc")))
}
