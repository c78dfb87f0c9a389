package dto

// ActivityNotification is the push event Strava delivers to the callback URL.
type ActivityNotification struct {
	ObjectType     string            `json:"object_type"`
	ObjectID       int64             `json:"object_id"`
	AspectType     string            `json:"aspect_type"`
	OwnerID        int64             `json:"owner_id"`
	SubscriptionID int64             `json:"subscription_id"`
	EventTime      int64             `json:"event_time"`
	Updates        map[string]string `json:"updates"`
}

// SubscriptionValidation is the GET handshake Strava performs when the
// subscription is created.
type SubscriptionValidation struct {
	HubMode        string `form:"hub.mode"`
	HubChallenge   string `form:"hub.challenge"`
	HubVerifyToken string `form:"hub.verify_token"`
}
