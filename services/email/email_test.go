package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core"
	appfs "github.com/myousuf-code/StudyWiseAI/fs"
	logsvc "github.com/myousuf-code/StudyWiseAI/services/logger"
)

func TestConsoleService_SendMessages(t *testing.T) {
	conf := core.NewTestConfig()
	logger := logsvc.NewNopLogger()
	core.ParseEmailTemplates(appfs.FS, conf, logger)

	to := []mail.Address{{Name: "Ada", Address: "ada@test.io"}}
	tests := []struct {
		name     string
		msg      *core.EmailMessage
		wantSent bool
		wantText string
		wantHTML string
	}{
		{name: "no recipients", msg: &core.EmailMessage{Subject: "hi", BodyStr: "hello"}},
		{name: "no content", msg: &core.EmailMessage{To: to, Subject: "hi"}},
		{name: "unknown template", msg: &core.EmailMessage{To: to, Subject: "hi", TemplateName: "lol"}},
		{name: "plain body", msg: &core.EmailMessage{To: to, Subject: "hi", BodyStr: "hello"}, wantSent: true, wantText: "hello"},
		{
			name: "reminder template",
			msg: &core.EmailMessage{
				To: to, Subject: "Review Biology", TemplateName: "reminder",
				TemplateData: map[string]string{
					"Name": "Ada", "Title": "Review Biology", "Message": "Time for a review session!",
					"ScheduledTime": "2026-10-15 18:00 UTC",
				},
			},
			wantSent: true, wantText: "Time for a review session!", wantHTML: "<h2>Review Biology</h2>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewConsoleServiceMock(conf, logger)
			svc.SendMessages(tt.msg)

			sent := svc.SentMessages()
			if !tt.wantSent {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.Contains(t, sent[0].TextContent, tt.wantText)
			assert.Contains(t, sent[0].HTMLContent, tt.wantHTML)
		})
	}
}

func TestSendgridService_prepare(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewSendgridService(conf, logsvc.NewNopLogger()).(*sendgridService)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "Ada", Address: "ada@test.io"}},
		Cc:          []mail.Address{{Address: "cc@test.io"}},
		Subject:     "Take a Break!",
		TextContent: "Time for a 5-10 minute break!",
	})
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[StudyWise] Take a Break!", m.Personalizations[0].Subject)
	assert.Len(t, m.Personalizations[0].To, 1)
	assert.Len(t, m.Personalizations[0].CC, 1)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "noreply@localhost", m.From.Address)
}
