package repo

import (
	"github.com/taskvest/taskvest/internal/pg"
	assignmentrepo "github.com/taskvest/taskvest/internal/repo/assignment-repo"
	paymentrepo "github.com/taskvest/taskvest/internal/repo/payment-repo"
	planrepo "github.com/taskvest/taskvest/internal/repo/plan-repo"
	profilerepo "github.com/taskvest/taskvest/internal/repo/profile-repo"
	taskrepo "github.com/taskvest/taskvest/internal/repo/task-repo"
	userrepo "github.com/taskvest/taskvest/internal/repo/user-repo"
	withdrawalrepo "github.com/taskvest/taskvest/internal/repo/withdrawal-repo"
	"github.com/taskvest/taskvest/internal/service/assignmentservice"
	"github.com/taskvest/taskvest/internal/service/authservice"
	"github.com/taskvest/taskvest/internal/service/paymentservice"
	"github.com/taskvest/taskvest/internal/service/planservice"
	"github.com/taskvest/taskvest/internal/service/profileservice"
	"github.com/taskvest/taskvest/internal/service/taskservice"
	"github.com/taskvest/taskvest/internal/service/withdrawalservice"
)

// ProfileRepo is the full profile surface shared by the services.
type ProfileRepo interface {
	authservice.ProfileRepo
	profileservice.Repo
	assignmentservice.ProfileRepo
	paymentservice.ProfileRepo
	withdrawalservice.ProfileRepo
}

type TaskRepo interface {
	taskservice.Repo
	assignmentservice.TaskRepo
}

type PlanRepo interface {
	planservice.Repo
	paymentservice.PlanRepo
}

type Repositories struct {
	UserRepo       authservice.Repo
	ProfileRepo    ProfileRepo
	PlanRepo       PlanRepo
	TaskRepo       TaskRepo
	AssignmentRepo assignmentservice.Repo
	PaymentRepo    paymentservice.Repo
	WithdrawalRepo withdrawalservice.Repo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(conn),
		ProfileRepo:    profilerepo.New(conn),
		PlanRepo:       planrepo.New(conn),
		TaskRepo:       taskrepo.New(conn),
		AssignmentRepo: assignmentrepo.New(conn),
		PaymentRepo:    paymentrepo.New(conn),
		WithdrawalRepo: withdrawalrepo.New(conn),
	}
}
