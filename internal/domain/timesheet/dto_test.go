package timesheet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateEntryRequest_ValidateReturnsParsedTimes(t *testing.T) {
	startStr := "2024-03-05T09:00:00Z"
	endStr := "2024-03-05T17:30:00+02:00"
	req := UpdateEntryRequest{
		ID:        uuid.NewString(),
		ActorID:   "actor-1",
		StartTime: &startStr,
		EndTime:   &endStr,
	}

	start, end, err := req.Validate()
	require.NoError(t, err)

	require.NotNil(t, start)
	assert.True(t, start.Equal(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)))
	require.NotNil(t, end)
	assert.True(t, end.Equal(time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC)))
}

func TestUpdateEntryRequest_ValidateOmittedTimesStayNil(t *testing.T) {
	desc := "lunch with the client"
	req := UpdateEntryRequest{
		ID:          uuid.NewString(),
		ActorID:     "actor-1",
		Description: &desc,
	}

	start, end, err := req.Validate()
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestUpdateEntryRequest_ValidateRejectsBadInput(t *testing.T) {
	bad := "05/03/2024 09:00"
	req := UpdateEntryRequest{
		ID:        uuid.NewString(),
		ActorID:   "actor-1",
		StartTime: &bad,
	}

	_, _, err := req.Validate()
	require.Error(t, err)

	empty := UpdateEntryRequest{ID: uuid.NewString(), ActorID: "actor-1"}
	_, _, err = empty.Validate()
	require.Error(t, err)
}
