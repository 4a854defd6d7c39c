package biblia

import "sync"

// NoticeLevel classifies a user-visible notice.
type NoticeLevel string

// Notice levels.
const (
	LevelInfo    NoticeLevel = "info"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

// Notice is a user-visible message produced while fetching or searching.
// Code carries the application error code (EINVALID, EBUDGET, ...).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

// NoticeFromError converts an application error into a notice of the given level.
func NoticeFromError(level NoticeLevel, err error) Notice {
	return Notice{Level: level, Code: ErrorCode(err), Message: ErrorMessage(err)}
}

// Reporter receives notices. It is the side channel between the
// fetch-and-search layer and whatever presents results to the user.
type Reporter interface {
	Report(n Notice)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(n Notice)

// Report calls f(n).
func (f ReporterFunc) Report(n Notice) { f(n) }

// Report sends n to r. A nil reporter discards the notice.
func Report(r Reporter, n Notice) {
	if r != nil {
		r.Report(n)
	}
}

// NoticeRecorder collects notices in the order they are reported.
// It is safe for concurrent use.
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Report records n.
func (r *NoticeRecorder) Report(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *NoticeRecorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Has reports whether a notice with the given code was recorded.
func (r *NoticeRecorder) Has(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notices {
		if n.Code == code {
			return true
		}
	}
	return false
}
