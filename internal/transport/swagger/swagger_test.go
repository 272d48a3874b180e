package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal/transport/swagger"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

const minimalSpec = `openapi: 3.0.3
info:
  title: EduMaster
  version: 1.0.0
paths:
  /ping:
    get:
      responses:
        "200":
          description: ok
`

var _ = Describe("Load", func() {
	write := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "openapi.yml")
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	It("serves a valid document as loaded", func() {
		spec, err := swagger.Load(context.Background(), write(minimalSpec))
		Expect(err).NotTo(HaveOccurred())
		Expect(spec.Doc.Info.Title).To(Equal("EduMaster"))

		rec := httptest.NewRecorder()
		spec.ServeSpec(rec, httptest.NewRequest(http.MethodGet, swagger.SpecRoute, nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(minimalSpec))
	})

	It("rejects a document without info", func() {
		_, err := swagger.Load(context.Background(), write("openapi: 3.0.3\npaths: {}\n"))
		Expect(err).To(HaveOccurred())
	})

	It("fails on a missing file", func() {
		_, err := swagger.Load(context.Background(), "/nonexistent/openapi.yml")
		Expect(err).To(HaveOccurred())
	})

	It("validates the shipped document", func() {
		_, err := swagger.Load(context.Background(), "../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})
})
