package realtime

import (
	"context"

	"github.com/gin-gonic/gin"

	"callcrm_backend/internal/events"
	apphttp "callcrm_backend/internal/http"
	"callcrm_backend/platform/logger"
)

// Module exposes the WebSocket endpoint and relays domain events into rooms.
type Module struct {
	hub *Hub
}

// NewModule creates the realtime module and wires its event subscriptions.
func NewModule(bus events.Bus, log *logger.Logger) *Module {
	m := &Module{hub: NewHub(log)}
	m.registerHandlers(bus)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "realtime"
}

// Hub returns the underlying hub, used for shutdown.
func (m *Module) Hub() *Hub {
	return m.hub
}

// RegisterRoutes mounts the WebSocket endpoint outside the /api/v1 group
// since it speaks the upgrade protocol, not JSON over REST.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/api/v1/ws", func(c *gin.Context) {
		m.hub.ServeWS(c.Writer, c.Request)
	})
}

// registerHandlers maps domain events to room broadcasts. Event names on
// the wire match what the frontend already listens for.
func (m *Module) registerHandlers(bus events.Bus) {
	relay := func(room, name string, payload func(events.Event) interface{}) events.Handler {
		return events.HandlerFunc(func(ctx context.Context, event events.Event) error {
			m.hub.Broadcast(room, name, payload(event))
			return nil
		})
	}

	bus.Subscribe(events.LeadCreated{}.EventName(), relay(RoomLeads, "lead:created", func(e events.Event) interface{} {
		return e.(events.LeadCreated).Lead
	}))
	bus.Subscribe(events.LeadUpdated{}.EventName(), relay(RoomLeads, "lead:updated", func(e events.Event) interface{} {
		return e.(events.LeadUpdated).Lead
	}))
	bus.Subscribe(events.LeadDeleted{}.EventName(), relay(RoomLeads, "lead:deleted", func(e events.Event) interface{} {
		return gin.H{"id": e.(events.LeadDeleted).LeadID}
	}))
	bus.Subscribe(events.LeadsBulkCreated{}.EventName(), relay(RoomLeads, "lead:bulk-created", func(e events.Event) interface{} {
		evt := e.(events.LeadsBulkCreated)
		return gin.H{"count": evt.Count, "leads": evt.Leads}
	}))

	bus.Subscribe(events.CampaignCreated{}.EventName(), relay(RoomCampaigns, "campaign:created", func(e events.Event) interface{} {
		return e.(events.CampaignCreated).Campaign
	}))
	bus.Subscribe(events.CampaignUpdated{}.EventName(), relay(RoomCampaigns, "campaign:updated", func(e events.Event) interface{} {
		return e.(events.CampaignUpdated).Campaign
	}))
	bus.Subscribe(events.CampaignDeleted{}.EventName(), relay(RoomCampaigns, "campaign:deleted", func(e events.Event) interface{} {
		return gin.H{"id": e.(events.CampaignDeleted).CampaignID}
	}))

	bus.Subscribe(events.CallLogCreated{}.EventName(), relay(RoomCallLogs, "callLog:created", func(e events.Event) interface{} {
		return e.(events.CallLogCreated).CallLog
	}))
	bus.Subscribe(events.CallLogDeleted{}.EventName(), relay(RoomCallLogs, "callLog:deleted", func(e events.Event) interface{} {
		return gin.H{"id": e.(events.CallLogDeleted).CallLogID}
	}))
	bus.Subscribe(events.CallbackDue{}.EventName(), relay(RoomCallLogs, "callback:due", func(e events.Event) interface{} {
		evt := e.(events.CallbackDue)
		return gin.H{
			"callLogId":    evt.CallLogID,
			"leadId":       evt.LeadID,
			"businessName": evt.BusinessName,
			"phoneNumber":  evt.PhoneNumber,
			"scheduledFor": evt.ScheduledFor,
		}
	}))

	bus.Subscribe(events.ScrapeProgress{}.EventName(), relay(RoomLeads, "scraping:progress", func(e events.Event) interface{} {
		evt := e.(events.ScrapeProgress)
		return gin.H{
			"query":        evt.Query,
			"current":      evt.Current,
			"total":        evt.Total,
			"lastBusiness": evt.LastBusiness,
		}
	}))
	bus.Subscribe(events.ScrapeComplete{}.EventName(), relay(RoomLeads, "scraping:complete", func(e events.Event) interface{} {
		evt := e.(events.ScrapeComplete)
		return gin.H{"query": evt.Query, "scraped": evt.Scraped, "saved": evt.Saved, "leads": evt.Leads}
	}))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
