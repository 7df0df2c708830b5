package modal

import "sync"

// Severity selects the icon shown next to a dialog title.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityDanger  Severity = "danger"
	SeveritySuccess Severity = "success"
)

// Icon returns the display icon for the severity. Unknown severities
// fall back to the info icon.
func (s Severity) Icon() string {
	switch s {
	case SeverityError, SeverityDanger:
		return "❌"
	case SeverityWarning:
		return "⚠️"
	case SeveritySuccess:
		return "✅"
	default:
		return "ℹ️"
	}
}

// Kind distinguishes acknowledge-only dialogs from yes/no questions.
type Kind int

const (
	KindAlert Kind = iota
	KindConfirm
)

// Button is one dialog action. Result is what the request resolves to
// when the button is pressed.
type Button struct {
	Label   string
	Result  bool
	Primary bool
}

// Request is one queued dialog. It is never retained after resolution.
type Request struct {
	Kind     Kind
	Title    string
	Message  string
	Severity Severity
	Buttons  []Button

	result chan bool
	done   bool
}

// DisplayTitle is the title with its severity icon, as rendered.
func (r *Request) DisplayTitle() string {
	if r.Kind == KindConfirm {
		return "❓ " + r.Title
	}
	return r.Severity.Icon() + " " + r.Title
}

// Service presents one user-facing decision dialog at a time. Requests
// made while a dialog is open queue behind it (FIFO) instead of
// overwriting the open dialog's content.
type Service struct {
	mu     sync.Mutex
	active *Request
	queue  []*Request
}

func NewService() *Service {
	return &Service{}
}

// Alert enqueues an acknowledge dialog. The channel receives true on
// explicit OK and false on backdrop dismissal; either way the dialog is
// closed when the value arrives.
func (s *Service) Alert(message, title string, severity Severity) <-chan bool {
	if title == "" {
		title = "Pemberitahuan"
	}
	return s.enqueue(&Request{
		Kind:     KindAlert,
		Title:    title,
		Message:  message,
		Severity: severity,
		Buttons:  []Button{{Label: "OK", Result: true, Primary: true}},
	})
}

// Confirm enqueues a yes/no dialog. The channel receives true only on
// an explicit "Ya"; "Tidak" and backdrop dismissal both yield false.
func (s *Service) Confirm(message, title string) <-chan bool {
	if title == "" {
		title = "Konfirmasi"
	}
	return s.enqueue(&Request{
		Kind:    KindConfirm,
		Title:   title,
		Message: message,
		Buttons: []Button{
			{Label: "Tidak", Result: false},
			{Label: "Ya", Result: true, Primary: true},
		},
	})
}

func (s *Service) enqueue(r *Request) <-chan bool {
	r.result = make(chan bool, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		s.active = r
	} else {
		s.queue = append(s.queue, r)
	}
	return r.result
}

// Active returns the dialog the presenter should show, or nil.
func (s *Service) Active() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Resolve closes the open dialog with the pressed button's result and
// promotes the next queued request, if any.
func (s *Service) Resolve(result bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveLocked(result)
}

// DismissBackdrop closes the open dialog as if the backdrop was
// clicked: the request resolves false.
func (s *Service) DismissBackdrop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveLocked(false)
}

func (s *Service) resolveLocked(result bool) {
	if s.active == nil || s.active.done {
		return
	}
	s.active.done = true
	s.active.result <- result
	s.active = nil
	if len(s.queue) > 0 {
		s.active = s.queue[0]
		s.queue = s.queue[1:]
	}
}
