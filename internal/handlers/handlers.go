package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/taskvest/taskvest/docs"
	assignmenthandlers "github.com/taskvest/taskvest/internal/handlers/assignments"
	authhandlers "github.com/taskvest/taskvest/internal/handlers/auth"
	paymenthandlers "github.com/taskvest/taskvest/internal/handlers/payments"
	planhandlers "github.com/taskvest/taskvest/internal/handlers/plans"
	profilehandlers "github.com/taskvest/taskvest/internal/handlers/profile"
	taskhandlers "github.com/taskvest/taskvest/internal/handlers/tasks"
	withdrawalhandlers "github.com/taskvest/taskvest/internal/handlers/withdrawals"
	"github.com/taskvest/taskvest/internal/service"
	"github.com/taskvest/taskvest/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AssignmentHandler interface {
	Verify(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	GetAssignments(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type PlanHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	CreatePlan(w http.ResponseWriter, r *http.Request)
}

type TaskHandler interface {
	GetTasks(w http.ResponseWriter, r *http.Request)
	CreateTask(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	GetPayments(w http.ResponseWriter, r *http.Request)
	GetByStatus(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	GetByStatus(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type ProfileHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	AssignmentHandler AssignmentHandler
	PlanHandler       PlanHandler
	TaskHandler       TaskHandler
	PaymentHandler    PaymentHandler
	WithdrawalHandler WithdrawalHandler
	ProfileHandler    ProfileHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		AssignmentHandler: assignmenthandlers.New(s.AssignmentService),
		PlanHandler:       planhandlers.New(s.PlanService),
		TaskHandler:       taskhandlers.New(s.TaskService),
		PaymentHandler:    paymenthandlers.New(s.PaymentService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		ProfileHandler:    profilehandlers.New(s.ProfileService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Get("/plans", h.PlanHandler.GetPlans)
			r.Get("/tasks", h.TaskHandler.GetTasks)

			r.Route("/user", func(r chi.Router) {
				r.Route("/assignments", func(r chi.Router) {
					r.Post("/", h.AssignmentHandler.Submit)
					r.Get("/", h.AssignmentHandler.GetAssignments)
					r.Post("/verify", h.AssignmentHandler.Verify)
				})
				r.Route("/payments", func(r chi.Router) {
					r.Post("/", h.PaymentHandler.CreatePayment)
					r.Get("/", h.PaymentHandler.GetPayments)
				})
				r.Route("/withdrawals", func(r chi.Router) {
					r.Post("/", h.WithdrawalHandler.Withdraw)
					r.Get("/", h.WithdrawalHandler.GetWithdrawals)
				})
				r.Route("/profile", func(r chi.Router) {
					r.Get("/", h.ProfileHandler.GetProfile)
					r.Patch("/", h.ProfileHandler.UpdateProfile)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminMiddleware)

				r.Post("/plans", h.PlanHandler.CreatePlan)
				r.Post("/tasks", h.TaskHandler.CreateTask)
				r.Route("/assignments", func(r chi.Router) {
					r.Get("/", h.AssignmentHandler.GetPending)
					r.Post("/{id}/review", h.AssignmentHandler.Review)
				})
				r.Route("/payments", func(r chi.Router) {
					r.Get("/", h.PaymentHandler.GetByStatus)
					r.Post("/{id}/review", h.PaymentHandler.Review)
				})
				r.Route("/withdrawals", func(r chi.Router) {
					r.Get("/", h.WithdrawalHandler.GetByStatus)
					r.Post("/{id}/review", h.WithdrawalHandler.Review)
				})
			})
		})
	})

	return r
}
