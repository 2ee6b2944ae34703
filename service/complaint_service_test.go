package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/storage"
	"taxidesk/storage/memory"
)

func newComplaintTestEnv(t *testing.T) (*memory.Store, ComplaintService) {
	t.Helper()
	stg := memory.New()
	log := logger.New("test")
	return stg, NewComplaintService(stg, NewDriverService(stg, log), log)
}

func TestFileComplaintComposesReasonAndBansAtThreshold(t *testing.T) {
	stg, svc := newComplaintTestEnv(t)
	id := stg.SeedDriver(models.Driver{Name: "Ramesh Kumar", Phone: "+911", IsActive: true, ComplaintCount: 2})

	result, err := svc.FileComplaint(context.Background(), id, "Rude behavior", "Shouted at customer")
	require.NoError(t, err)

	assert.Equal(t, "Rude behavior: Shouted at customer", result.Complaint.Reason)
	assert.Equal(t, models.ComplaintStatusPending, result.Complaint.Status)
	assert.True(t, result.DriverBanned)
	assert.Equal(t, 3, result.ComplaintCount)

	d, _ := stg.Driver().GetByID(context.Background(), id)
	assert.Equal(t, 3, d.ComplaintCount)
	assert.True(t, d.IsBanned)
	assert.False(t, d.IsActive)
}

func TestFileComplaintBelowThresholdLeavesDriverActive(t *testing.T) {
	stg, svc := newComplaintTestEnv(t)
	id := stg.SeedDriver(models.Driver{Name: "Suresh Singh", Phone: "+912", IsActive: true})

	result, err := svc.FileComplaint(context.Background(), id, "Late arrival", "45 minutes late")
	require.NoError(t, err)
	assert.False(t, result.DriverBanned)
	assert.Equal(t, 1, result.ComplaintCount)

	d, _ := stg.Driver().GetByID(context.Background(), id)
	assert.True(t, d.IsActive)
	assert.False(t, d.IsBanned)
}

func TestFileComplaintUnknownDriver(t *testing.T) {
	stg, svc := newComplaintTestEnv(t)

	_, err := svc.FileComplaint(context.Background(), 42, "Rude behavior", "none")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	complaints, err := stg.Complaint().GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, complaints)
}

// escalationGoneDrivers reports the driver present for the existence check
// but gone by the time escalation runs, the window described for a driver
// deleted mid-flight.
type escalationGoneDrivers struct {
	DriverService
}

func (escalationGoneDrivers) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return &models.Driver{ID: id}, nil
}

func (escalationGoneDrivers) RegisterComplaintAndMaybeBan(ctx context.Context, id int64) (bool, int, error) {
	return false, 0, storage.ErrNotFound
}

func TestFileComplaintSurvivesEscalationMiss(t *testing.T) {
	stg := memory.New()
	log := logger.New("test")
	svc := NewComplaintService(stg, escalationGoneDrivers{}, log)

	result, err := svc.FileComplaint(context.Background(), 7, "Rash driving", "overtook on a blind turn")
	require.NoError(t, err)
	assert.False(t, result.DriverBanned)

	// the complaint record must not be rolled back
	complaints, err := stg.Complaint().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "Rash driving: overtook on a blind turn", complaints[0].Reason)
}

func TestConcurrentComplaintsSerializeIncrements(t *testing.T) {
	stg, svc := newComplaintTestEnv(t)
	id := stg.SeedDriver(models.Driver{Name: "Ramesh Kumar", Phone: "+911", IsActive: true, ComplaintCount: 1})

	var wg sync.WaitGroup
	results := make([]*FileComplaintResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.FileComplaint(context.Background(), id, "Rude behavior", "simultaneous report")
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	d, _ := stg.Driver().GetByID(context.Background(), id)
	assert.Equal(t, 3, d.ComplaintCount, "both increments must land")
	assert.True(t, d.IsBanned)
	assert.False(t, d.IsActive)

	// the threshold fires on exactly one of the two filings
	bans := 0
	for _, r := range results {
		if r.DriverBanned && r.ComplaintCount == 3 {
			bans++
		}
	}
	assert.Equal(t, 1, bans)

	complaints, _ := stg.Complaint().GetAll(context.Background())
	assert.Len(t, complaints, 2)
}

func TestListComplaintsNewestFirst(t *testing.T) {
	stg, svc := newComplaintTestEnv(t)
	id := stg.SeedDriver(models.Driver{Name: "Suresh Singh", Phone: "+912", IsActive: true})

	_, err := svc.FileComplaint(context.Background(), id, "Late arrival", "first")
	require.NoError(t, err)
	_, err = svc.FileComplaint(context.Background(), id, "Late arrival", "second")
	require.NoError(t, err)

	complaints, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, complaints, 2)
	assert.Equal(t, "Late arrival: second", complaints[0].Reason)
}
