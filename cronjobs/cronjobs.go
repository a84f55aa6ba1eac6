// Package cronjobs schedules the periodic SLA-breach sweep.
package cronjobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"civicsense/db"
	"civicsense/realtime"
	"civicsense/triage"
)

// InitCronJobs starts the scheduler. The returned cron can be stopped on
// shutdown.
func InitCronJobs(store *db.Store, hub *realtime.Hub) *cron.Cron {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// SLA sweep: every 10 minutes, flag open complaints past their window.
	_, err := c.AddFunc("*/10 * * * *", func() {
		log.Println("CronJob: SLA sweep running")
		SweepSLABreaches(context.Background(), store, hub)
	})
	if err != nil {
		log.Println("Error scheduling SLA sweep:", err)
	}

	c.Start()
	return c
}

// slaBreachData is the admin-channel payload for an overdue complaint.
type slaBreachData struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	Urgency    string `json:"urgency"`
	SlaEta     string `json:"sla_eta"`
	OverdueBy  string `json:"overdue_by"`
}

// SweepSLABreaches finds open complaints older than their SLA window and
// broadcasts each to the admin channel. Best effort: a failed query is
// logged and retried on the next tick.
func SweepSLABreaches(ctx context.Context, store *db.Store, hub *realtime.Hub) {
	open, err := store.OpenComplaints(ctx)
	if err != nil {
		log.Printf("SLA sweep: failed to fetch open complaints: %v", err)
		return
	}

	now := time.Now().UTC()
	breached := 0
	for _, complaint := range open {
		deadline := complaint.Timestamp.Add(triage.SlaWindow(complaint.Urgency))
		if now.Before(deadline) {
			continue
		}
		breached++
		hub.Broadcast(realtime.AdminChannel, realtime.Event{
			Type: realtime.EventSLABreach,
			Data: slaBreachData{
				ID:         complaint.ID,
				Department: complaint.Department,
				Urgency:    string(complaint.Urgency),
				SlaEta:     complaint.SlaEta,
				OverdueBy:  now.Sub(deadline).Round(time.Minute).String(),
			},
		})
	}

	log.Printf("SLA sweep: %d open complaints checked, %d breached", len(open), breached)
}
