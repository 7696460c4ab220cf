package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-distribution/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Operators *handlers.OperatorsHandler
	Sources   *handlers.SourcesHandler
	Leads     *handlers.LeadsHandler
	Contacts  *handlers.ContactsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	operators := app.Group("/operators")
	operators.Post("/", cfg.Operators.CreateOperator)
	operators.Get("/", cfg.Operators.ListOperators)
	operators.Get("/:id", cfg.Operators.GetOperator)
	operators.Put("/:id", cfg.Operators.UpdateOperator)
	operators.Post("/:id/weights", cfg.Operators.UpsertWeight)
	operators.Get("/:id/load", cfg.Operators.OperatorLoad)

	sources := app.Group("/sources")
	sources.Post("/", cfg.Sources.CreateSource)
	sources.Get("/", cfg.Sources.ListSources)
	sources.Get("/:id", cfg.Sources.GetSource)
	sources.Get("/:id/operators", cfg.Sources.SourceOperators)

	leads := app.Group("/leads")
	leads.Post("/", cfg.Leads.CreateLead)
	leads.Get("/", cfg.Leads.ListLeads)
	leads.Get("/:id", cfg.Leads.GetLead)

	contacts := app.Group("/contacts")
	contacts.Post("/", cfg.Contacts.CreateContact)
	contacts.Get("/", cfg.Contacts.ListContacts)
	contacts.Get("/stats/distribution", cfg.Contacts.DistributionStats)
	contacts.Get("/leads/:lead_id", cfg.Contacts.LeadContacts)
	contacts.Put("/:id/close", cfg.Contacts.CloseContact)
}
