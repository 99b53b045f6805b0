package hull_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHullSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Hull Suite")
}
