package keys_test

import (
	"crypto/sha256"
	"fmt"
	"testing"

	. "github.com/franela/goblin"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
	"github.com/thebartekbanach/picproxy/pkg/keys"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

func TestKeyDerivation(t *testing.T) {
	g := Goblin(t)

	urlDigest := func(url string) string {
		return fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
	}

	g.Describe("Original key derivation", func() {
		g.It("should derive the namespaced key of the source image", func() {
			key, err := keys.Original("blog", "https://blog.example.com/cat.png")

			g.Assert(err).IsNil("expected to not get error, but got", err)
			g.Assert(key).Equal("blog/original/" + urlDigest("https://blog.example.com/cat.png"))
		})

		g.It("should be deterministic", func() {
			first, _ := keys.Original("blog", "https://blog.example.com/cat.png")
			second, _ := keys.Original("blog", "https://blog.example.com/cat.png")

			g.Assert(first).Equal(second)
		})

		g.It("should derive distinct keys for distinct source urls", func() {
			first, _ := keys.Original("blog", "https://blog.example.com/cat.png")
			second, _ := keys.Original("blog", "https://blog.example.com/dog.png")

			g.Assert(first != second).IsTrue("expected distinct keys, but both were", first)
		})

		g.It("should derive distinct keys for distinct namespaces", func() {
			first, _ := keys.Original("blog", "https://blog.example.com/cat.png")
			second, _ := keys.Original("shop", "https://blog.example.com/cat.png")

			g.Assert(first != second).IsTrue("expected distinct keys, but both were", first)
		})

		g.It("should reject an empty namespace", func() {
			_, err := keys.Original("", "https://blog.example.com/cat.png")

			g.Assert(errkind.KindOf(err)).Equal(errkind.Configuration, "expected configuration error, but got", err)
		})
	})

	g.Describe("Processed key derivation", func() {
		g.It("should include transform type and target size in the key", func() {
			key, err := keys.Processed("blog", transform.TypeResize, 400, 300, "https://blog.example.com/cat.png")

			g.Assert(err).IsNil("expected to not get error, but got", err)
			g.Assert(key).Equal("blog/resize/400x300/" + urlDigest("https://blog.example.com/cat.png"))
		})

		g.It("should derive distinct keys for distinct transform types", func() {
			resized, _ := keys.Processed("blog", transform.TypeResize, 400, 300, "https://blog.example.com/cat.png")
			cropped, _ := keys.Processed("blog", transform.TypeCrop, 400, 300, "https://blog.example.com/cat.png")

			g.Assert(resized != cropped).IsTrue("expected distinct keys, but both were", resized)
		})

		g.It("should derive distinct keys for distinct target sizes", func() {
			small, _ := keys.Processed("blog", transform.TypeResize, 100, 100, "https://blog.example.com/cat.png")
			large, _ := keys.Processed("blog", transform.TypeResize, 400, 300, "https://blog.example.com/cat.png")

			g.Assert(small != large).IsTrue("expected distinct keys, but both were", small)
		})

		g.It("should accept zero dimensions as valid key components", func() {
			key, err := keys.Processed("blog", transform.TypeResize, 0, 0, "https://blog.example.com/cat.png")

			g.Assert(err).IsNil("expected to not get error, but got", err)
			g.Assert(key).Equal("blog/resize/0x0/" + urlDigest("https://blog.example.com/cat.png"))
		})

		g.It("should reject an empty namespace", func() {
			_, err := keys.Processed("", transform.TypeResize, 400, 300, "https://blog.example.com/cat.png")

			g.Assert(errkind.KindOf(err)).Equal(errkind.Configuration, "expected configuration error, but got", err)
		})
	})
}
