package dashboard

import (
	"fmt"
	"io"
	"sync"
)

// Level is the tone of a notification
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification messages shown to the operator
const (
	MsgLoginSuccess   = "Login successful"
	MsgLoginFailed    = "Invalid Email or Password!"
	MsgLoggedOut      = "Logged out"
	MsgLoadFailed     = "Database not working!"
	MsgCreated        = "Record added successfully"
	MsgUpdated        = "Record updated successfully"
	MsgDeleted        = "Record deleted successfully"
	MsgDeleteFailed   = "Not able to delete record"
	MsgServerError    = "Server error"
	MsgDeleteQuestion = "Are you sure you want to delete this record?"
)

// Notifier shows short transient messages
type Notifier interface {
	Notify(level Level, message string)
}

// WriterNotifier prints successes to Out and errors to Err
type WriterNotifier struct {
	Out io.Writer
	Err io.Writer
}

func (n WriterNotifier) Notify(level Level, message string) {
	w := n.Out
	if level == LevelError && n.Err != nil {
		w = n.Err
	}
	if w == nil {
		return
	}
	fmt.Fprintln(w, message)
}

// Recorder keeps every notification, for callers that render them later
type Recorder struct {
	mu       sync.Mutex
	messages []Notification
}

// Notification is one recorded message
type Notification struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Notification{Level: level, Message: message})
}

// Messages returns a copy of what was recorded so far
func (r *Recorder) Messages() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.messages...)
}

// Last returns the most recent notification, or the zero value
func (r *Recorder) Last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Notification{}
	}
	return r.messages[len(r.messages)-1]
}
