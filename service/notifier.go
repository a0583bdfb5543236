package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notice is the message banner shown on top of a view
type Notice struct {
	Error   string    `json:"error,omitempty"`
	Success string    `json:"success,omitempty"`
	Info    string    `json:"info,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier keeps the latest error and success message.
// Success and info notices expire after a TTL, errors stay until dismissed.
type Notifier struct {
	mu         sync.Mutex
	notice     Notice
	successTTL time.Duration
	now        func() time.Time
}

// NewNotifier creates a Notifier whose success messages last ttl
func NewNotifier(ttl time.Duration) *Notifier {
	return &Notifier{successTTL: ttl, now: time.Now}
}

// Fail records err as the current error notice
func (n *Notifier) Fail(op string, err error) {
	msg := Describe(err)
	zap.S().Errorf("❌ %s: %v", op, err)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notice.Error = msg
	n.notice.At = n.now()
}

// Succeed records a success notice
func (n *Notifier) Succeed(msg string) {
	zap.S().Infof("✅ %s", msg)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notice.Success = msg
	n.notice.Error = ""
	n.notice.At = n.now()
}

// Inform records a neutral notice, such as a cancelled action
func (n *Notifier) Inform(msg string) {
	zap.S().Infof("ℹ️  %s", msg)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notice.Info = msg
	n.notice.At = n.now()
}

// Current returns the active notice
func (n *Notifier) Current() Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.notice
	if n.successTTL > 0 && n.now().Sub(out.At) > n.successTTL {
		n.notice.Success, n.notice.Info = "", ""
		out.Success, out.Info = "", ""
	}
	return out
}

// Dismiss clears both messages
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notice = Notice{}
}
