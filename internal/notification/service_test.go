package notification_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/core/events"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/notification/postgres"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/testutil"
	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
)

var _ = Describe("Notification", func() {
	var (
		ctx    context.Context
		logger *slog.Logger
		svc    *notification.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(GinkgoWriter, nil))

		db, err := testutil.OpenSQLite(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(db.Close)

		svc = notification.NewService(postgres.NewNotificationRepository(db.Gorm), logger)
	})

	Describe("Service", func() {
		It("sends an unread notification with its data", func() {
			n, err := svc.Send(ctx, "U1", notification.TypePayment, "hello", map[string]interface{}{"payment_id": "p-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(n.ID).To(BeNumerically(">", 0))
			Expect(n.IsRead()).To(BeFalse())

			count, err := svc.UnreadCount(ctx, "U1")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))

			read, err := svc.MarkAsRead(ctx, n.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(read.IsRead()).To(BeTrue())
			Expect(read.Data).To(HaveKeyWithValue("payment_id", "p-1"))

			count, err = svc.UnreadCount(ctx, "U1")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("requires a user, type and message", func() {
			_, err := svc.Send(ctx, "", "", "", nil)
			Expect(errors.IsType(err, errors.ErrorTypeValidation)).To(BeTrue())

			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Details.(errors.ValidationErrors).Errors).To(HaveLen(3))
		})

		It("returns not found when marking an unknown notification", func() {
			_, err := svc.MarkAsRead(ctx, 404)
			Expect(err).To(MatchError(errors.ErrNotificationNotFound))
		})
	})

	Describe("EventHandler", func() {
		var bus *events.EventBus

		BeforeEach(func() {
			bus = events.NewEventBus(logger)
			notification.NewEventHandler(svc, logger).RegisterEventHandlers(bus)
		})

		It("notifies the payer for created and verified payments", func() {
			now := time.Now().UTC()
			Expect(bus.PublishSync(ctx, events.NewPaymentCreatedEvent("p-1", "student", "U1", "500", "BDT", "pending", now))).To(Succeed())
			Expect(bus.PublishSync(ctx, events.NewPaymentVerifiedEvent("p-1", "student", "U1", "500", "BDT", "completed", now))).To(Succeed())

			count, err := svc.UnreadCount(ctx, "U1")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("delivers asynchronously published events once drained", func() {
			Expect(bus.Publish(ctx, events.NewPaymentCreatedEvent("p-2", "tutor", "T1", "75.50", "BDT", "pending", time.Now()))).To(Succeed())

			drainCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			Expect(bus.Drain(drainCtx)).To(Succeed())

			count, err := svc.UnreadCount(ctx, "T1")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects events of the wrong shape", func() {
			h := notification.NewEventHandler(svc, logger)
			err := h.HandlePaymentCreated(ctx, events.BaseEvent{ID: "x", Type: events.EventTypePaymentCreated})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Handler", func() {
		var router chi.Router

		BeforeEach(func() {
			h := notification.NewHandler(transport.NewBaseHandler(logger), svc)
			router = chi.NewRouter()
			router.Get("/users/{userID}/notifications/unread-count", h.UnreadCount)
			router.Patch("/notifications/{id}/read", h.MarkAsRead)
		})

		do := func(method, path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
			return rec
		}

		It("reports the unread count", func() {
			_, err := svc.Send(ctx, "G1", notification.TypePayment, "msg", nil)
			Expect(err).NotTo(HaveOccurred())

			rec := do(http.MethodGet, "/users/G1/notifications/unread-count")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"user_id":"G1","unread":1}`))
		})

		It("marks a notification read", func() {
			n, err := svc.Send(ctx, "G1", notification.TypePayment, "msg", nil)
			Expect(err).NotTo(HaveOccurred())

			rec := do(http.MethodPatch, "/notifications/"+strconv.FormatInt(n.ID, 10)+"/read")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"read_at"`))
		})

		It("answers 400 for a malformed id and 404 for an unknown one", func() {
			Expect(do(http.MethodPatch, "/notifications/abc/read").Code).To(Equal(http.StatusBadRequest))
			Expect(do(http.MethodPatch, "/notifications/999/read").Code).To(Equal(http.StatusNotFound))
		})
	})
})
