package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	assignmentrepo "github.com/taskvest/taskvest/internal/repo/assignment-repo"
	paymentrepo "github.com/taskvest/taskvest/internal/repo/payment-repo"
	planrepo "github.com/taskvest/taskvest/internal/repo/plan-repo"
	profilerepo "github.com/taskvest/taskvest/internal/repo/profile-repo"
	taskrepo "github.com/taskvest/taskvest/internal/repo/task-repo"
	userrepo "github.com/taskvest/taskvest/internal/repo/user-repo"
	withdrawalrepo "github.com/taskvest/taskvest/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.ProfileRepo)
	assert.NotNil(t, repo.PlanRepo)
	assert.NotNil(t, repo.TaskRepo)
	assert.NotNil(t, repo.AssignmentRepo)
	assert.NotNil(t, repo.PaymentRepo)
	assert.NotNil(t, repo.WithdrawalRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &profilerepo.Repository{}, repo.ProfileRepo)
	assert.IsType(t, &planrepo.Repository{}, repo.PlanRepo)
	assert.IsType(t, &taskrepo.Repository{}, repo.TaskRepo)
	assert.IsType(t, &assignmentrepo.Repository{}, repo.AssignmentRepo)
	assert.IsType(t, &paymentrepo.Repository{}, repo.PaymentRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.WithdrawalRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
