package models

const (
	WebhookTestSuccess = "success"
	WebhookTestFailed  = "failed"
)

// WebhookState is the derived webhook health of a repository.
type WebhookState int

const (
	WebhookNotConfigured WebhookState = iota
	WebhookHealthy
	WebhookFailing
	WebhookUntested
)

// WebhookAction is what the console offers next for a webhook state.
type WebhookAction string

const (
	WebhookActionConfigure WebhookAction = "configure"
	WebhookActionNone      WebhookAction = ""
	WebhookActionRecreate  WebhookAction = "recreate"
	WebhookActionTest      WebhookAction = "test"
)

type WebhookPresentation struct {
	Label    string
	TagColor string
	Action   WebhookAction
}

var webhookPresentations = map[WebhookState]WebhookPresentation{
	WebhookNotConfigured: {Label: "Not configured", TagColor: "default", Action: WebhookActionConfigure},
	WebhookHealthy:       {Label: "Healthy", TagColor: "success", Action: WebhookActionNone},
	WebhookFailing:       {Label: "Failing", TagColor: "error", Action: WebhookActionRecreate},
	WebhookUntested:      {Label: "Not tested", TagColor: "warning", Action: WebhookActionTest},
}

// WebhookStateOf derives the webhook state from the stored repository fields.
func WebhookStateOf(r *Repository) WebhookState {
	if r.WebhookID == nil || *r.WebhookID == 0 {
		return WebhookNotConfigured
	}
	switch r.LastWebhookTestStatus {
	case WebhookTestSuccess:
		return WebhookHealthy
	case WebhookTestFailed:
		return WebhookFailing
	default:
		return WebhookUntested
	}
}

func (s WebhookState) Presentation() WebhookPresentation {
	return webhookPresentations[s]
}

func (s WebhookState) String() string {
	return webhookPresentations[s].Label
}
