package message_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/edumaster/internal"
	userDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/user"
	"github.com/frahmantamala/edumaster/internal/core/testdb"
	"github.com/frahmantamala/edumaster/internal/message"
	messagePostgres "github.com/frahmantamala/edumaster/internal/message/postgres"
	"github.com/frahmantamala/edumaster/internal/transport"
)

func TestMessage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Message Suite")
}

// asUser stands in for the auth middleware; the caller id comes from X-User.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := strconv.ParseInt(r.Header.Get("X-User"), 10, 64); err == nil {
			r = r.WithContext(internal.ContextWithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

var _ = Describe("Message Handler Integration", func() {
	var (
		db                *gorm.DB
		router            *chi.Mux
		alice, bob, carol int64
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())

		service := message.NewService(messagePostgres.NewMessageRepository(db), slogger)
		handler := message.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Use(asUser)
		router.Get("/messages", handler.GetMessages)
		router.Post("/messages", handler.SendMessage)
		router.Put("/messages/{id}/read", handler.MarkRead)

		rl := userDatamodel.Role{Name: "teacher", DisplayName: "Teacher", IsActive: true}
		Expect(db.Create(&rl).Error).To(Succeed())
		ids := make([]int64, 0, 3)
		for _, email := range []string{"alice@school.test", "bob@school.test", "carol@school.test"} {
			u := userDatamodel.User{Email: email, PasswordHash: "x", RoleID: rl.ID, IsActive: true}
			Expect(db.Create(&u).Error).To(Succeed())
			ids = append(ids, u.ID)
		}
		alice, bob, carol = ids[0], ids[1], ids[2]
	})

	do := func(as int64, method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		if as != 0 {
			req.Header.Set("X-User", strconv.FormatInt(as, 10))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	send := func(from, to int64, body string) *message.Message {
		rec := do(from, http.MethodPost, "/messages", map[string]interface{}{"recipient_id": to, "subject": "Hi", "body": body})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var m message.Message
		Expect(json.Unmarshal(rec.Body.Bytes(), &m)).To(Succeed())
		return &m
	}

	list := func(as int64) message.MessagesResponse {
		rec := do(as, http.MethodGet, "/messages", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp message.MessagesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	readPath := func(id int64) string { return "/messages/" + strconv.FormatInt(id, 10) + "/read" }

	It("sets the sender to the caller", func() {
		m := send(alice, bob, "See you at the staff meeting")
		Expect(m.SenderID).To(Equal(alice))
		Expect(m.RecipientID).To(Equal(bob))
		Expect(m.IsRead).To(BeFalse())
	})

	It("lists only the caller's conversations, newest first", func() {
		first := send(alice, bob, "one")
		second := send(bob, alice, "two")
		send(bob, carol, "three")

		resp := list(alice)
		Expect(resp.Count).To(Equal(2))
		Expect(resp.Messages[0].ID).To(Equal(second.ID))
		Expect(resp.Messages[1].ID).To(Equal(first.ID))

		Expect(list(carol).Count).To(Equal(1))
	})

	It("validates the recipient and body", func() {
		Expect(do(alice, http.MethodPost, "/messages", map[string]interface{}{"recipient_id": bob, "body": "  "}).Code).To(Equal(http.StatusBadRequest))
		Expect(do(alice, http.MethodPost, "/messages", map[string]interface{}{"recipient_id": 999, "body": "hello"}).Code).To(Equal(http.StatusNotFound))
		Expect(do(0, http.MethodPost, "/messages", map[string]interface{}{"recipient_id": bob, "body": "hello"}).Code).To(Equal(http.StatusUnauthorized))
	})

	It("lets only the recipient mark a message read", func() {
		m := send(alice, bob, "hello")

		Expect(do(alice, http.MethodPut, readPath(m.ID), nil).Code).To(Equal(http.StatusForbidden))
		Expect(do(carol, http.MethodPut, readPath(m.ID), nil).Code).To(Equal(http.StatusForbidden))

		rec := do(bob, http.MethodPut, readPath(m.ID), nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var read message.Message
		Expect(json.Unmarshal(rec.Body.Bytes(), &read)).To(Succeed())
		Expect(read.IsRead).To(BeTrue())
		Expect(read.ReadAt).NotTo(BeNil())

		Expect(do(bob, http.MethodPut, readPath(999), nil).Code).To(Equal(http.StatusNotFound))
	})

	It("filters unread messages for the recipient", func() {
		m := send(alice, bob, "one")
		send(alice, bob, "two")
		Expect(do(bob, http.MethodPut, readPath(m.ID), nil).Code).To(Equal(http.StatusOK))

		rec := do(bob, http.MethodGet, "/messages?unread=true", nil)
		var resp message.MessagesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Count).To(Equal(1))
		Expect(resp.Messages[0].Body).To(Equal("two"))
	})
})
