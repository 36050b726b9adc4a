package main

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/render"
	"github.com/goliatone/go-invitekit/pkg/store/gormstore"
	"github.com/goliatone/go-invitekit/pkg/store/memory"
)

// InviteStore is the persistence surface the public site needs: the authoring
// store plus the published-slug lookup.
type InviteStore interface {
	draft.Store
	FindBySlug(ctx context.Context, slug string) (draft.InviteDraft, error)
}

func openStore(dsn string, log *zap.Logger) (InviteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		log.Warn("no database configured, published invites will not survive restarts")
		return memory.New(), nil
	}
	return gormstore.Open(dsn)
}

// Server serves published invitations and guest RSVPs.
type Server struct {
	app      *fiber.App
	catalog  *catalog.Registry
	resolver *render.Resolver
	store    InviteStore
	log      *zap.Logger
}

// NewServer wires the routes onto a fresh Fiber app.
func NewServer(reg *catalog.Registry, resolver *render.Resolver, store InviteStore, log *zap.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "invitekit",
			DisableStartupMessage: true,
		}),
		catalog:  reg,
		resolver: resolver,
		store:    store,
		log:      log,
	}
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/i/:slug", s.handleInvite)
	s.app.Post("/i/:id/rsvp", s.handleRSVP)
	return s
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleInvite renders the published invitation living at /i/:slug. Unknown
// slugs and unpublished drafts both read as not found to guests.
func (s *Server) handleInvite(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !draft.ValidSlug(slug) {
		return fiber.NewError(fiber.StatusNotFound, "invitation not found")
	}

	ctx := c.UserContext()
	invite, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, draft.ErrInviteNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invitation not found")
		}
		s.log.Error("find invite", zap.String("slug", slug), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	def, err := s.catalog.LookupBySlug(invite.TemplateSlug)
	if err != nil {
		s.log.Error("invite references unknown template",
			zap.String("invite", invite.ID),
			zap.String("template", invite.TemplateSlug),
		)
		return fiber.ErrInternalServerError
	}

	renderer, err := s.resolver.Resolve(def.Category, def.Slug)
	if err != nil {
		s.log.Error("resolve renderer", zap.String("template", def.Slug), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	body, err := renderer.Render(ctx, render.Context{
		Config:   def,
		Data:     invite.Data,
		InviteID: invite.ID,
	})
	if err != nil {
		s.log.Error("render invite", zap.String("invite", invite.ID), zap.Error(err))
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, renderer.ContentType())
	return c.Send(body)
}

type rsvpForm struct {
	GuestName string `form:"guestName"`
	Attending string `form:"attending"`
	Note      string `form:"note"`
}

// handleRSVP records a guest response. Responses are logged rather than
// stored; delivery integrations subscribe to the log stream.
func (s *Server) handleRSVP(c *fiber.Ctx) error {
	id := c.Params("id")
	invite, err := s.store.GetInvite(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, draft.ErrInviteNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invitation not found")
		}
		s.log.Error("load invite for rsvp", zap.String("invite", id), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	if invite.Status != draft.StatusPublished {
		return fiber.NewError(fiber.StatusNotFound, "invitation not found")
	}

	var form rsvpForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid response")
	}
	if strings.TrimSpace(form.GuestName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "guest name is required")
	}

	s.log.Info("rsvp received",
		zap.String("invite", invite.ID),
		zap.String("guest", form.GuestName),
		zap.String("attending", form.Attending),
	)
	return c.JSON(fiber.Map{"status": "received"})
}
