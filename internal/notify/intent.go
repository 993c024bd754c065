// Package notify turns state machine alerts into delivery-ready push
// notifications and records the outcome of every dispatch.
package notify

import (
	"fmt"
	"strconv"

	"github.com/Jainesh-shah/CourtTracker/internal/watch"
)

// Intent is one notification handed to the delivery provider. The provider's
// success or failure matters only for audit logging; the subscription's
// state transition has already been committed by the time this is sent.
type Intent struct {
	OwnerID       string            `json:"owner_id"`
	DeliveryToken string            `json:"delivery_token"`
	CaseNumber    string            `json:"case_number"`
	Alert         watch.AlertType   `json:"alert_type"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	Data          map[string]string `json:"data"`
}

// BuildIntent assembles the push payload for one decided alert.
func BuildIntent(sub watch.Subscription, token string, alert watch.Alert) Intent {
	intent := Intent{
		OwnerID:       sub.OwnerID,
		DeliveryToken: token,
		CaseNumber:    alert.CaseNumber,
		Alert:         alert.Type,
		Title:         alertTitle(alert),
		Body:          alertBody(alert),
		Data: map[string]string{
			"case_number": alert.CaseNumber,
			"alert_type":  string(alert.Type),
		},
	}
	if alert.Position > 0 {
		intent.Data["position"] = strconv.Itoa(alert.Position)
	}
	if c := alert.Court; c != nil {
		intent.Data["court_number"] = c.CourtNumber
		intent.Data["judge_name"] = c.JudgeName
		if c.StreamURL != "" {
			intent.Data["stream_url"] = c.StreamURL
		}
	}
	return intent
}

func alertTitle(alert watch.Alert) string {
	switch alert.Type {
	case watch.AlertEarlyWarning:
		return "Your case is coming up"
	case watch.AlertApproaching:
		return "Your case is next"
	case watch.AlertInSession:
		return "Your case is being heard"
	case watch.AlertCompleted:
		return "Hearing concluded"
	default:
		return "Case update"
	}
}

func alertBody(alert watch.Alert) string {
	court := ""
	if alert.Court != nil && alert.Court.CourtNumber != "" {
		court = " in court " + alert.Court.CourtNumber
	}
	switch alert.Type {
	case watch.AlertEarlyWarning:
		return fmt.Sprintf("%s is %d%s in queue%s", alert.CaseNumber,
			alert.Position, ordinalSuffix(alert.Position), court)
	case watch.AlertApproaching:
		return fmt.Sprintf("%s is next to be heard%s", alert.CaseNumber, court)
	case watch.AlertInSession:
		return fmt.Sprintf("%s is now in session%s", alert.CaseNumber, court)
	case watch.AlertCompleted:
		return fmt.Sprintf("%s has left the board; the hearing appears to be over", alert.CaseNumber)
	default:
		return alert.CaseNumber
	}
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
