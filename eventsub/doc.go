// Package eventsub decodes and authenticates Twitch EventSub webhook
// messages.
//
// # Receiving webhooks
//
// Handler verifies each request and dispatches it:
//
//	h := eventsub.NewHandler(secret,
//		eventsub.OnNotification(func(ctx context.Context, d *eventsub.Delivery, n *eventsub.Notification) error {
//			switch ev := n.Event.(type) {
//			case *eventsub.ChannelFollowV2Payload:
//				fmt.Println(ev.UserName, "followed")
//			case *eventsub.UnrecognizedEvent:
//				fmt.Println("unknown event", ev.Key)
//			}
//			return nil
//		}),
//	)
//	http.Handle("/eventsub", h)
//
// Callers with their own HTTP stack can use ReadRequest, or Verify and
// ParseMessage directly. The signature must always be checked against the
// raw body before it is decoded.
//
// # Events
//
// Every payload is registered under its (type, version) key. A notification
// for a key the registry does not know decodes to *UnrecognizedEvent with
// the raw JSON, so new event types never break a receiver.
package eventsub
