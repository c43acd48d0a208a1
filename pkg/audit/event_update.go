package audit

import (
	"fmt"
	"strconv"
)

// UpdateEvent records a replacement of one stored record
type UpdateEvent struct {
	Collection   string
	RecordID     int64
	ClientIP     string
	Via          string // "form" or "api"
	Success      bool
	ErrorMessage string
}

func (e UpdateEvent) MessageID() string {
	return "update"
}

func (e UpdateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s updated %s/%d", e.ClientIP, e.Collection, e.RecordID)
	}
	msg := fmt.Sprintf("%s tried to update %s/%d", e.ClientIP, e.Collection, e.RecordID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UpdateEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e UpdateEvent) StructuredData() map[string]map[string]string {
	result := "failure"
	if e.Success {
		result = "success"
	}
	return map[string]map[string]string{
		SDIDSubject: {
			"collection": e.Collection,
			"id":         strconv.FormatInt(e.RecordID, 10),
		},
		SDIDClient: {
			"ip":  e.ClientIP,
			"via": e.Via,
		},
		SDIDAction: {
			"operation": "update",
			"result":    result,
		},
	}
}
