package models

// CategoryLimit is a per-owner cap on the summed daily usage of every app
// sharing one effective category. Independent of per-app limits; both must
// hold for an app to stay unblocked.
type CategoryLimit struct {
	OwnerUID          string `json:"owner_uid" firestore:"owner_uid"`
	Category          string `json:"category" firestore:"category"`
	DailyLimitMinutes int    `json:"daily_limit_minutes" firestore:"daily_limit_minutes"`
}
