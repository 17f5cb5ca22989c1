package slack

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AirHelp/samplestats/helper"
	"github.com/AirHelp/samplestats/notification"

	"github.com/slack-go/slack"
)

type Client struct {
	url         string
	icon        string
	username    string
	channel     string
	clusterName string
}

func NewClient(url, channel, clusterName, username string) Client {
	return Client{
		url:         url,
		channel:     channel,
		username:    username,
		clusterName: clusterName,
		icon:        "bar_chart",
	}
}

func (c Client) Kind() string {
	return "slack"
}

func (c Client) Notify(ctx context.Context, payload notification.NotificationPayload) error {
	return slack.PostWebhookContext(ctx, c.url, c.message(payload))
}

func (c Client) message(payload notification.NotificationPayload) *slack.WebhookMessage {
	s := payload.Summary

	fields := []slack.AttachmentField{
		statField("Maximum", s.Maximum),
		statField("Minimum", s.Minimum),
		statField("Mean", s.Mean),
		statField("Median", s.Median),
		{Title: "Sorted values", Value: helper.JoinValues(payload.SortedValues, ", ")},
		{Title: "Cluster name", Value: c.clusterName},
	}

	for _, label := range [][2]string{
		{"Dataset", payload.DatasetName},
		{"Source", payload.Source},
		{"Namespace", payload.Namespace},
		{"Environment", payload.Environment},
	} {
		fields = append(fields, slack.AttachmentField{Title: label[0], Value: label[1], Short: true})
	}

	return &slack.WebhookMessage{
		Username:  c.username,
		IconEmoji: c.icon,
		Channel:   c.channel,
		Attachments: []slack.Attachment{{
			Color:      "good",
			AuthorIcon: c.icon,
			Pretext:    fmt.Sprintf("Statistics of data set %v (%d values)", payload.DatasetName, s.Count),
			Footer:     fmt.Sprintf("samplestats @ %v", payload.ProcessedAt.Format(time.RFC3339)),
			Fields:     fields,
		}},
	}
}

func statField(title string, value uint8) slack.AttachmentField {
	return slack.AttachmentField{Title: title, Value: strconv.Itoa(int(value)), Short: true}
}
