package services

import (
	"context"
	"strconv"

	"firebase.google.com/go/messaging"

	"isafari/internal/models"
)

// FCMPusher delivers notifications to a device through Firebase Cloud Messaging.
type FCMPusher struct {
	Client *messaging.Client
}

func NewFCMPusher(client *messaging.Client) *FCMPusher {
	return &FCMPusher{Client: client}
}

func (p *FCMPusher) Push(ctx context.Context, token string, n models.Notification) error {
	_, err := p.Client.Send(ctx, pushMessage(token, n))
	return err
}

func pushMessage(token string, n models.Notification) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"type":            n.Type,
			"notification_id": strconv.Itoa(n.ID),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: n.Title,
						Body:  n.Message,
					},
					Sound: "default",
				},
			},
		},
	}
}
