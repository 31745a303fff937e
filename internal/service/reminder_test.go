package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"college-chat/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func idPtr(id uint) *uint     { return &id }

func TestReminderOpFor(t *testing.T) {
	cases := map[string]ReminderOp{
		http.MethodGet:    ReminderList,
		http.MethodPost:   ReminderCreate,
		http.MethodPut:    ReminderUpdate,
		http.MethodDelete: ReminderDelete,
	}
	for method, want := range cases {
		got, ok := ReminderOpFor(method)
		require.True(t, ok, method)
		assert.Equal(t, want, got, method)
	}
	_, ok := ReminderOpFor(http.MethodPatch)
	assert.False(t, ok)
	assert.Equal(t, "update", ReminderUpdate.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-07-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-06", FormatDate(d))

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, "", FormatDate(nil))

	for _, bad := range []string{"06/07/2024", "2024-13-01", "2024-07-06T10:00:00Z", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestCreateAndListReminders(t *testing.T) {
	svc := NewReminderService(newTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, model.CreateReminderRequest{Task: "submit lab report", Date: strPtr("2024-09-01")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, model.CreateReminderRequest{Task: "buy notebook"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest first
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	resp := ToReminderResponse(list[1])
	assert.Equal(t, "submit lab report", resp.Task)
	assert.Equal(t, "2024-09-01", resp.Date)
	assert.Equal(t, "", ToReminderResponse(list[0]).Date)
	_, err = time.Parse(time.RFC3339, resp.CreatedAt)
	assert.NoError(t, err)
}

func TestCreateReminderValidation(t *testing.T) {
	svc := NewReminderService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateReminderRequest{Task: "   "})
	assert.ErrorIs(t, err, ErrTaskRequired)

	_, err = svc.Create(ctx, model.CreateReminderRequest{Task: "x", Date: strPtr("1/2/2024")})
	assert.ErrorIs(t, err, ErrInvalidDate)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateReminderPartial(t *testing.T) {
	svc := NewReminderService(newTestDB(t))
	ctx := context.Background()

	r, err := svc.Create(ctx, model.CreateReminderRequest{Task: "read chapter 3", Date: strPtr("2024-10-10")})
	require.NoError(t, err)

	// task only: date untouched
	got, err := svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID), Task: strPtr("read chapter 4")})
	require.NoError(t, err)
	assert.Equal(t, "read chapter 4", got.Task)
	assert.Equal(t, "2024-10-10", FormatDate(got.Date))

	// new date
	got, err = svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID), Date: strPtr("2024-11-11")})
	require.NoError(t, err)
	assert.Equal(t, "2024-11-11", FormatDate(got.Date))

	// empty date clears it
	_, err = svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID), Date: strPtr("")})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Date)
	assert.Equal(t, "read chapter 4", list[0].Task)
	assert.Equal(t, r.CreatedAt.Unix(), list[0].CreatedAt.Unix())
}

func TestUpdateReminderErrors(t *testing.T) {
	svc := NewReminderService(newTestDB(t))
	ctx := context.Background()

	r, err := svc.Create(ctx, model.CreateReminderRequest{Task: "t"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, model.UpdateReminderRequest{Task: strPtr("x")})
	assert.ErrorIs(t, err, ErrIDRequired)

	_, err = svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID + 100)})
	assert.ErrorIs(t, err, ErrReminderNotFound)

	_, err = svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID), Task: strPtr("")})
	assert.ErrorIs(t, err, ErrTaskRequired)

	_, err = svc.Update(ctx, model.UpdateReminderRequest{ID: idPtr(r.ID), Date: strPtr("31-12-2024")})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDeleteReminder(t *testing.T) {
	svc := NewReminderService(newTestDB(t))
	ctx := context.Background()

	r, err := svc.Create(ctx, model.CreateReminderRequest{Task: "keep me"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, model.DeleteReminderRequest{}), ErrIDRequired)
	assert.ErrorIs(t, svc.Delete(ctx, model.DeleteReminderRequest{ID: idPtr(r.ID + 1)}), ErrReminderNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, model.DeleteReminderRequest{ID: idPtr(r.ID)}))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
