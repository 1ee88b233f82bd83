package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

func TestNotification_MarkAsChecked(t *testing.T) {
	t.Run("new becomes unread", func(t *testing.T) {
		n := model.Notification{Status: model.NotificationStatusNew}
		n.MarkAsChecked()
		assert.Equal(t, model.NotificationStatusUnread, n.Status)
	})

	t.Run("read stays read", func(t *testing.T) {
		n := model.Notification{Status: model.NotificationStatusRead}
		n.MarkAsChecked()
		assert.Equal(t, model.NotificationStatusRead, n.Status)
	})
}

func TestNotification_MarkAsRead(t *testing.T) {
	for _, status := range []model.NotificationStatus{
		model.NotificationStatusNew,
		model.NotificationStatusUnread,
		model.NotificationStatusRead,
	} {
		n := model.Notification{Status: status}
		n.MarkAsRead()
		assert.Equal(t, model.NotificationStatusRead, n.Status)
	}
}

func TestDraftText(t *testing.T) {
	t.Run("confirm clears the draft", func(t *testing.T) {
		var d model.DraftText
		d.SetDraft("wip")
		d.Confirm("final version")

		assert.Nil(t, d.Draft)
		if assert.NotNil(t, d.Final) {
			assert.Equal(t, "final version", *d.Final)
		}
	})

	t.Run("blank draft clears without touching final", func(t *testing.T) {
		var d model.DraftText
		d.Confirm("kept")
		d.SetDraft("")

		assert.Nil(t, d.Draft)
		assert.NotNil(t, d.Final)
	})

	t.Run("empty", func(t *testing.T) {
		var d model.DraftText
		assert.True(t, d.IsEmpty())
		d.SetDraft("x")
		assert.False(t, d.IsEmpty())
	})
}
