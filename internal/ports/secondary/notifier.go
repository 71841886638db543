package secondary

// Notifier surfaces transient success/error feedback for a mutation,
// the service-layer analog of the dashboard's toast messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications. Use in tests.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (*NopNotifier) Success(string) {}
func (*NopNotifier) Error(string)   {}

// RecordingNotifier captures notifications for assertions in tests.
type RecordingNotifier struct {
	Successes []string
	Errors    []string
}

func (r *RecordingNotifier) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *RecordingNotifier) Error(msg string)   { r.Errors = append(r.Errors, msg) }
