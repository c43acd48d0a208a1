// Package audit writes an RFC5424 audit trail of record updates.
//
// Every save issued through the edit forms or the JSON API produces one
// line, successful or not:
//
//	<133>1 2024-05-01T10:00:00.000Z host ums 4242 update [action@32473 operation="update" result="success"][client@32473 ip="10.0.0.1" via="form"][subject@32473 collection="users" id="1"] 10.0.0.1 updated users/1
package audit
