package keys

import (
	"crypto/sha256"
	"fmt"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

// Original derives the storage key of the unmodified source image:
// {namespace}/original/{hex-digest(url)}.
func Original(namespace, url string) (string, error) {
	if namespace == "" {
		return "", errkind.New(errkind.Configuration, "key derivation", "namespace not defined")
	}

	return fmt.Sprintf("%s/original/%s", namespace, digest(url)), nil
}

// Processed derives the storage key of one transformed variant:
// {namespace}/{resize|crop}/{width}x{height}/{hex-digest(url)}.
//
// Width and height of 0 are valid key components; callers resolving
// natural-size dimensions must re-derive the key with the resolved
// values before storing.
func Processed(namespace string, transformType transform.Type, width, height uint, url string) (string, error) {
	if namespace == "" {
		return "", errkind.New(errkind.Configuration, "key derivation", "namespace not defined")
	}

	return fmt.Sprintf("%s/%s/%dx%d/%s", namespace, transformType, width, height, digest(url)), nil
}

func digest(url string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
}
