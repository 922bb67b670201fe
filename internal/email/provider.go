package email

import "fmt"

// Provider sends notification email. Swap notifications are best effort:
// callers never fail a transition on a send error.
type Provider interface {
	Send(email *Email) error

	// SendSwapAccepted notifies the requester their swap was accepted.
	SendSwapAccepted(to, itemTitle string) error

	// SendSwapCompleted notifies a participant the swap finished and the
	// item changed hands.
	SendSwapCompleted(to, itemTitle string) error
}

func swapAcceptedEmail(to, itemTitle string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Your swap request was accepted",
		Body: fmt.Sprintf(
			"Good news — the owner accepted your swap request for %q.\n"+
				"Open the swap conversation to arrange delivery.\n", itemTitle),
	}
}

func swapCompletedEmail(to, itemTitle string) *Email {
	return &Email{
		To:      []string{to},
		Subject: "Swap completed",
		Body: fmt.Sprintf(
			"The swap for %q is complete and the item has a new home.\n"+
				"Thanks for keeping clothes in circulation.\n", itemTitle),
	}
}
