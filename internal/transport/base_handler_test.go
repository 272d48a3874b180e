package transport_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

var _ = Describe("BaseHandler", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	DescribeTable("maps service errors to status codes",
		func(err error, status int, message string) {
			w := httptest.NewRecorder()
			h.HandleServiceError(w, err)
			Expect(w.Code).To(Equal(status))
			Expect(decode(w)).To(HaveKeyWithValue("error", message))
		},
		Entry("validation", internal.ErrInvalidRole, http.StatusBadRequest, "Invalid role"),
		Entry("unauthorized", internal.ErrNotAuthenticated, http.StatusUnauthorized, "Please authenticate"),
		Entry("forbidden", internal.ErrSystemRoleDelete, http.StatusForbidden, "Cannot delete system role"),
		Entry("not found", internal.ErrStudentNotFound, http.StatusNotFound, "Student not found"),
		Entry("conflict", internal.NewConflictError("email already exists", internal.ErrCodeDuplicate), http.StatusBadRequest, "email already exists"),
		Entry("internal", internal.NewInternalError("db down", errors.New("x")), http.StatusInternalServerError, "internal server error"),
		Entry("unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"),
	)

	It("finds wrapped app errors", func() {
		w := httptest.NewRecorder()
		h.HandleServiceError(w, internal.ErrRoleNotFound.WithCause(errors.New("record not found")))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers an oversized body with 413", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
		r.Body = http.MaxBytesReader(w, r.Body, 16)

		var dst map[string]string
		err := h.DecodeJSON(r, &dst)
		Expect(err).To(MatchError(internal.ErrBodyTooLarge))

		h.HandleServiceError(w, err)
		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
	})

	It("clamps page parameters", func() {
		r := httptest.NewRequest(http.MethodGet, "/x?limit=1000&offset=-5", nil)
		limit, offset := h.PageParams(r)
		Expect(limit).To(Equal(transport.MaxPageLimit))
		Expect(offset).To(Equal(0))
	})

	It("parses optional query ids", func() {
		r := httptest.NewRequest(http.MethodGet, "/x?class=7", nil)
		v, err := h.OptionalInt64Query(r, "class")
		Expect(err).NotTo(HaveOccurred())
		Expect(*v).To(Equal(int64(7)))

		v, err = h.OptionalInt64Query(r, "session")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNil())
	})

	It("extracts bearer tokens", func() {
		r := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.Header.Set("Authorization", "Bearer abc")
		Expect(h.ExtractTokenFromHeader(r)).To(Equal("abc"))
		r.Header.Set("Authorization", "Basic abc")
		Expect(h.ExtractTokenFromHeader(r)).To(BeEmpty())
	})
})
