package audit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	l := NewLogger()
	l.SetWriter(buf)
	l.hostname = "host"
	l.pid = 4242
	l.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return l
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	fixedLogger(&buf).Log(UpdateEvent{
		Collection: "users",
		RecordID:   1,
		ClientIP:   "10.0.0.1",
		Via:        "form",
		Success:    true,
	})

	assert.Equal(t,
		`<133>1 2024-05-01T10:00:00.000Z host ums 4242 update `+
			`[action@32473 operation="update" result="success"]`+
			`[client@32473 ip="10.0.0.1" via="form"]`+
			`[subject@32473 collection="users" id="1"] 10.0.0.1 updated users/1`+"\n",
		buf.String())
}

func TestUpdateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   UpdateEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "success",
			event:   UpdateEvent{Collection: "groups", RecordID: 20, ClientIP: "::1", Success: true},
			wantMsg: "::1 updated groups/20",
			wantSev: SeverityNotice,
		},
		{
			name:    "failure with reason",
			event:   UpdateEvent{Collection: "users", RecordID: 3, ClientIP: "::1", ErrorMessage: "database is locked"},
			wantMsg: "::1 tried to update users/3: database is locked",
			wantSev: SeverityWarning,
		},
		{
			name:    "failure without reason",
			event:   UpdateEvent{Collection: "users", RecordID: 3, ClientIP: "::1"},
			wantMsg: "::1 tried to update users/3",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "update", tt.event.MessageID())
			assert.Equal(t, tt.wantMsg, tt.event.Message())
			assert.Equal(t, tt.wantSev, tt.event.Severity())
		})
	}
}

func TestFormatStructuredData(t *testing.T) {
	assert.Equal(t, "", formatStructuredData(nil))
	assert.Equal(t,
		`[a@1 x="1" y="q\"uo\]te\\"][b@1 z="2"]`,
		formatStructuredData(map[string]map[string]string{
			"b@1": {"z": "2"},
			"a@1": {"y": `q"uo]te\`, "x": "1"},
		}))
}
