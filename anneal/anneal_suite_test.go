package anneal_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAnneal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Anneal Suite")
}
