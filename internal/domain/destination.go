package domain

// Destination is a single Telegram bot/chat pair.
type Destination struct {
	Name   string
	Token  string
	ChatID string
}

type DeliveryResult struct {
	Destination string
	Err         error
}

type DeliveryReport struct {
	Results []DeliveryResult
}

func (r DeliveryReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

func (r DeliveryReport) Delivered() int {
	return len(r.Results) - r.Failed()
}
