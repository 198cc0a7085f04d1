package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HTTPNotifier posts push notifications to the notification service.
// Delivery is fire-and-forget: a failed push never fails the operation that
// triggered it.
type HTTPNotifier struct {
	Address string
}

func NewHTTPNotifier(address string) *HTTPNotifier {
	return &HTTPNotifier{Address: address}
}

func (n *HTTPNotifier) SendPush(userID, title, body, route string) {
	go func() {
		payload, err := json.Marshal(Notification{
			UserID: userID,
			Title:  title,
			Body:   body,
			Route:  route,
		})
		if err != nil {
			log.Printf("push error: marshal failed for user %s: %v", userID, err)
			return
		}

		client := &http.Client{
			Timeout: 5 * time.Second,
		}

		resp, err := client.Post(n.Address+"/notifications/push", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			log.Printf("push error: request failed for user %s: %v", userID, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("push warning: non-2xx response for user %s: %s", userID, resp.Status)
		}
	}()
}
