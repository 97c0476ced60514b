package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/repository"
	"github.com/Burkhanovich/article-site/pkg/jobs"
	"github.com/Burkhanovich/article-site/pkg/mailer"
	"github.com/Burkhanovich/article-site/pkg/middleware/requestid"
)

const deliveryJobType = "notification.email"

// Delivery is an in-app notification together with the address its email copy goes to.
type Delivery struct {
	Notification models.Notification
	Email        string
	Name         string
}

// RealtimePublisher pushes notification events to connected clients.
type RealtimePublisher interface {
	Publish(ctx context.Context, event repository.RealtimeEvent) error
}

// NotificationDispatcher delivers committed notifications by email and real-time push.
// Failures are logged and counted, never returned.
type NotificationDispatcher struct {
	mailer    mailer.Mailer
	publisher RealtimePublisher
	queue     *jobs.Queue
	metrics   *MetricsService
	siteName  string
	siteURL   string
	logger    *zap.Logger
}

// DispatcherOption customises the dispatcher.
type DispatcherOption func(*NotificationDispatcher)

// WithDispatcherPublisher enables real-time fan out.
func WithDispatcherPublisher(publisher RealtimePublisher) DispatcherOption {
	return func(d *NotificationDispatcher) {
		d.publisher = publisher
	}
}

// WithDispatcherMetrics records delivery counters.
func WithDispatcherMetrics(metrics *MetricsService) DispatcherOption {
	return func(d *NotificationDispatcher) {
		d.metrics = metrics
	}
}

// WithDispatcherSite sets the site name and base URL used in emails.
func WithDispatcherSite(name, url string) DispatcherOption {
	return func(d *NotificationDispatcher) {
		d.siteName = name
		d.siteURL = strings.TrimRight(url, "/")
	}
}

// NewNotificationDispatcher constructs a dispatcher around mail.
func NewNotificationDispatcher(mail mailer.Mailer, logger *zap.Logger, opts ...DispatcherOption) *NotificationDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &NotificationDispatcher{
		mailer:   mail,
		siteName: "Article Publishing Platform",
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// UseQueue routes email delivery through q. The queue handler must be HandleJob.
func (d *NotificationDispatcher) UseQueue(q *jobs.Queue) {
	d.queue = q
}

// Dispatch publishes real-time events and sends (or enqueues) emails for deliveries.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, deliveries []Delivery) {
	if d == nil {
		return
	}
	logr := d.logger
	if id := requestid.FromContext(ctx); id != "" {
		logr = logr.With(zap.String("request_id", id))
	}
	for _, delivery := range deliveries {
		d.publish(ctx, delivery)

		if strings.TrimSpace(delivery.Email) == "" {
			logr.Debug("skipping email for recipient without address", zap.String("user_id", delivery.Notification.UserID))
			continue
		}
		if d.queue != nil {
			err := d.queue.Enqueue(jobs.Job{ID: delivery.Notification.ID, Type: deliveryJobType, Payload: delivery})
			if err == nil {
				continue
			}
			logr.Warn("email queue unavailable, sending inline", zap.String("notification_id", delivery.Notification.ID), zap.Error(err))
		}
		if err := d.sendEmail(ctx, delivery); err != nil {
			logr.Warn("notification email failed", zap.String("notification_id", delivery.Notification.ID), zap.Error(err))
		}
	}
}

// HandleJob is the jobs.Handler for queued emails. Returning an error lets the queue retry.
func (d *NotificationDispatcher) HandleJob(ctx context.Context, job jobs.Job) error {
	delivery, ok := job.Payload.(Delivery)
	if !ok {
		d.logger.Error("unexpected job payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	return d.sendEmail(ctx, delivery)
}

func (d *NotificationDispatcher) sendEmail(ctx context.Context, delivery Delivery) error {
	if d.mailer == nil {
		return nil
	}
	err := d.mailer.Send(ctx, d.compose(delivery))
	d.metrics.RecordDelivery("email", err == nil)
	return err
}

func (d *NotificationDispatcher) publish(ctx context.Context, delivery Delivery) {
	if d.publisher == nil {
		return
	}
	n := delivery.Notification
	event := repository.RealtimeEvent{
		UserID:         n.UserID,
		Type:           string(n.Type),
		NotificationID: n.ID,
		Data: map[string]interface{}{
			"title":   n.Title,
			"message": n.Message,
			"link":    n.Link,
		},
	}
	err := d.publisher.Publish(ctx, event)
	d.metrics.RecordDelivery("realtime", err == nil)
	if err != nil {
		d.logger.Warn("realtime publish failed", zap.String("notification_id", n.ID), zap.Error(err))
	}
}

func (d *NotificationDispatcher) compose(delivery Delivery) mailer.Message {
	n := delivery.Notification
	var body strings.Builder
	name := delivery.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&body, "Hello %s,\n\n%s\n", name, n.Message)
	if n.Link != nil && *n.Link != "" {
		link := *n.Link
		if strings.HasPrefix(link, "/") {
			link = d.siteURL + link
		}
		fmt.Fprintf(&body, "\n%s\n", link)
	}
	fmt.Fprintf(&body, "\n%s\n", d.siteName)

	return mailer.Message{
		To:      []string{delivery.Email},
		Subject: fmt.Sprintf("[%s] %s", d.siteName, n.Title),
		Body:    body.String(),
	}
}
