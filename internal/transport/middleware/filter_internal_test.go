package middleware

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("sensitive field filtering", func() {
	It("masks whole sensitive keys at any depth", func() {
		out := filterBody([]byte(`{"email":"a@b.c","password":"p","nested":[{"token":"t","session_id":4,"author":"x"}]}`))
		Expect(out).To(ContainSubstring(`"password":"[FILTERED]"`))
		Expect(out).To(ContainSubstring(`"token":"[FILTERED]"`))
		Expect(out).To(ContainSubstring(`"session_id":4`))
		Expect(out).To(ContainSubstring(`"author":"x"`))
		Expect(out).To(ContainSubstring(`"email":"a@b.c"`))
	})

	It("masks credential headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("Content-Type", "application/json")
		out := filterHeaders(h)
		Expect(out["Authorization"]).To(Equal(filtered))
		Expect(out["Content-Type"]).To(Equal("application/json"))
	})
})
