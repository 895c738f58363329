package services

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService sends push notifications to the parent device over FCM.
type NotificationService struct {
	FCMClient         *messaging.Client
	ParentDeviceToken string
}

func NewNotificationService(client *messaging.Client, parentDeviceToken string) *NotificationService {
	return &NotificationService{FCMClient: client, ParentDeviceToken: parentDeviceToken}
}

// NotifyParent sends one notification. A missing device token means the
// parent never registered for pushes; that is a skip, not an error.
func (s *NotificationService) NotifyParent(ctx context.Context, title, body string, data map[string]string) error {
	if s.ParentDeviceToken == "" || s.FCMClient == nil {
		return nil
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: s.ParentDeviceToken,
	}

	resp, err := s.FCMClient.Send(ctx, message)
	if err != nil {
		log.Printf("[FCM] Failed to send notification: %v", err)
		return err
	}

	log.Printf("[FCM] Notification sent. ID: %s, Title: %s", resp, title)
	return nil
}
