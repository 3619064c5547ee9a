package readiness

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheck struct {
	name string
	err  error
}

func (f *fakeCheck) Name() string                    { return f.name }
func (f *fakeCheck) Check(ctx context.Context) error { return f.err }

func TestRunAllHealthy(t *testing.T) {
	c := New(&fakeCheck{name: "a"}, &fakeCheck{name: "b"})
	report := c.Run(context.Background())
	assert.Equal(t, StatusUp, report.Status)
	assert.Equal(t, StatusUp, report.Checks["a"])
	assert.Equal(t, StatusUp, report.Checks["b"])
	assert.Empty(t, report.Errors)
}

func TestRunOneFailureBringsDown(t *testing.T) {
	c := New(&fakeCheck{name: "a"}, &fakeCheck{name: "b", err: errors.New("boom")})
	report := c.Run(context.Background())
	assert.Equal(t, StatusDown, report.Status)
	assert.Equal(t, StatusUp, report.Checks["a"])
	assert.Equal(t, StatusDown, report.Checks["b"])
	assert.Equal(t, "boom", report.Errors["b"])
}

func TestStoreCheckSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	check := NewStoreCheck(db)
	assert.NoError(t, check.Check(context.Background()))
	assert.Equal(t, "store", check.Name())
}

func TestStoreCheckFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection refused"))

	check := NewStoreCheck(db)
	assert.Error(t, check.Check(context.Background()))
}

func TestDiscoveryCheckDelegates(t *testing.T) {
	check := NewDiscoveryCheck(func(ctx context.Context) error { return nil })
	assert.NoError(t, check.Check(context.Background()))
	assert.Equal(t, "discovery", check.Name())
}

func TestArtifactCheckFalseIsError(t *testing.T) {
	check := NewArtifactCheck(func(ctx context.Context) bool { return false })
	assert.Error(t, check.Check(context.Background()))
}
