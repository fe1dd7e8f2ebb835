package glyphgrid_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGlyphgrid(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Glyphgrid Suite")
}
