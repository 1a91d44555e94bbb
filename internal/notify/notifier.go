package notify

// Notifier composes the message tables with a Sink. Callers use the uniform
// three-step pattern for mutating actions:
//
//	id := n.NotifyLoading(action)
//	... run the action ...
//	n.Dismiss(id)
//	n.NotifySuccess(action, result) // or NotifyError(action, err)
type Notifier struct {
	sink Sink
}

func NewNotifier(sink Sink) *Notifier { return &Notifier{sink: sink} }

func (n *Notifier) NotifySuccess(action string, result any) string {
	return n.sink.Show(Record{
		Severity:    SeveritySuccess,
		Title:       Label(action),
		Message:     SuccessMessage(action, result),
		AutoDismiss: SeveritySuccess.AutoDismiss(),
	})
}

func (n *Notifier) NotifyError(action string, err any) string {
	return n.sink.Show(Record{
		Severity:    SeverityError,
		Title:       Label(action) + " Failed",
		Message:     ErrorMessage(action, err),
		AutoDismiss: SeverityError.AutoDismiss(),
	})
}

func (n *Notifier) NotifyWarning(title, message string) string {
	return n.sink.Show(Record{
		Severity:    SeverityWarning,
		Title:       title,
		Message:     message,
		AutoDismiss: SeverityWarning.AutoDismiss(),
	})
}

// NotifyLoading shows a persistent in-progress record; the caller must
// dismiss it by id when the action resolves.
func (n *Notifier) NotifyLoading(action string) string {
	return n.sink.Show(Record{
		Severity: SeverityLoading,
		Title:    Label(action),
		Message:  Label(action) + " in progress...",
	})
}

func (n *Notifier) Dismiss(id string) { n.sink.Dismiss(id) }
