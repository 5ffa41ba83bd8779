package wire

import (
	"net/url"
	"strings"
)

const (
	paymentRequestsSegment = "paymentRequests"
	paymentSegment         = "payment"
)

// IDFromLocation extracts a resource id from a location URL.
//
// For payment request locations the id that follows the paymentRequests
// segment is returned, so both .../paymentRequests/<id> and
// .../paymentRequests/<id>/payment yield <id>. Any other location yields its
// last path segment.
func IDFromLocation(location string) string {
	path := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if s == paymentRequestsSegment && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	last := segments[len(segments)-1]
	if last == paymentSegment && len(segments) > 1 {
		return segments[len(segments)-2]
	}
	return last
}
