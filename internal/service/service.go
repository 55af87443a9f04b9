package service

import (
	"time"

	"github.com/taskvest/taskvest/internal/handlers/assignments"
	"github.com/taskvest/taskvest/internal/handlers/auth"
	"github.com/taskvest/taskvest/internal/handlers/payments"
	"github.com/taskvest/taskvest/internal/handlers/plans"
	"github.com/taskvest/taskvest/internal/handlers/profile"
	"github.com/taskvest/taskvest/internal/handlers/tasks"
	"github.com/taskvest/taskvest/internal/handlers/withdrawals"

	pkgauth "github.com/taskvest/taskvest/pkg/auth"

	"github.com/taskvest/taskvest/internal/pg"
	"github.com/taskvest/taskvest/internal/repo"
	assignmentservice "github.com/taskvest/taskvest/internal/service/assignmentservice"
	authservice "github.com/taskvest/taskvest/internal/service/authservice"
	paymentservice "github.com/taskvest/taskvest/internal/service/paymentservice"
	planservice "github.com/taskvest/taskvest/internal/service/planservice"
	profileservice "github.com/taskvest/taskvest/internal/service/profileservice"
	taskservice "github.com/taskvest/taskvest/internal/service/taskservice"
	withdrawalservice "github.com/taskvest/taskvest/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       auth.Service
	AssignmentService assignments.Service
	PlanService       plans.Service
	TaskService       tasks.Service
	PaymentService    payments.Service
	WithdrawalService withdrawals.Service
	ProfileService    profile.Service
}

func New(repo *repo.Repositories, verifier assignmentservice.Verifier, txManager pg.TXManager, loc *time.Location) *Services {
	authService := authservice.New(repo.UserRepo, repo.ProfileRepo, &pkgauth.HashService{}, &pkgauth.JWTService{}, txManager)
	assignmentService := assignmentservice.New(repo.AssignmentRepo, repo.TaskRepo, repo.ProfileRepo, verifier, txManager, loc)
	planService := planservice.New(repo.PlanRepo)
	taskService := taskservice.New(repo.TaskRepo)
	paymentService := paymentservice.New(repo.PaymentRepo, repo.PlanRepo, repo.ProfileRepo, txManager, loc)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, repo.ProfileRepo, txManager, loc)
	profileService := profileservice.New(repo.ProfileRepo, loc)

	return &Services{
		AuthService:       authService,
		AssignmentService: assignmentService,
		PlanService:       planService,
		TaskService:       taskService,
		PaymentService:    paymentService,
		WithdrawalService: withdrawalService,
		ProfileService:    profileService,
	}
}
