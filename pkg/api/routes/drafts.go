package routes

import (
	"strconv"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/drafts"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
	"github.com/gofiber/fiber/v2"
)

// draftView is what a client sees of a session, the stored draft plus everything derived from it
type draftView struct {
	ID        string
	Mode      drafts.SessionMode
	RouteID   string `json:",omitempty"`
	Name      string
	Direction ctdf.RouteDirection

	Stops      []routebuilder.SelectedStop
	Transfers  []routebuilder.Transfer
	Advisory   string
	SearchText string
	Validation routebuilder.ValidationResult
}

func newDraftView(session *drafts.Session) draftView {
	return draftView{
		ID:         session.ID,
		Mode:       session.Mode,
		RouteID:    session.RouteID,
		Name:       session.Name,
		Direction:  session.Direction,
		Stops:      session.Draft.Stops(),
		Transfers:  session.Draft.Transfers(),
		Advisory:   session.Draft.Advisory(),
		SearchText: session.Draft.SearchText(),
		Validation: session.Draft.Validation(),
	}
}

func DraftsRouter(router fiber.Router, manager *drafts.Manager) {
	handlers := &draftHandlers{manager: manager}

	router.Post("/", handlers.createDraft)
	router.Post("/edit/:route", handlers.editRoute)
	router.Get("/:id", handlers.getDraft)
	router.Delete("/:id", handlers.cancelDraft)
	router.Put("/:id/search", handlers.setSearchText)
	router.Post("/:id/pick", handlers.pickCandidate)
	router.Post("/:id/stops", handlers.appendStop)
	router.Delete("/:id/stops/:index", handlers.removeStop)
	router.Put("/:id/stops/:key/position", handlers.reorderStop)
	router.Get("/:id/validation", handlers.getValidation)
	router.Post("/:id/save", handlers.saveDraft)
}

type draftHandlers struct {
	manager *drafts.Manager
}

func invalidBody(c *fiber.Ctx) error {
	c.SendStatus(fiber.StatusBadRequest)
	return c.JSON(fiber.Map{
		"error": "Request body is not valid",
	})
}

func (h *draftHandlers) createDraft(c *fiber.Ctx) error {
	var body struct {
		Name      string
		Direction ctdf.RouteDirection
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	session, err := h.manager.New(c.UserContext(), accountUserID(c), body.Name, body.Direction)
	if err != nil {
		return sendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) editRoute(c *fiber.Ctx) error {
	session, err := h.manager.Edit(c.UserContext(), accountUserID(c), c.Params("route"))
	if err != nil {
		return sendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) getDraft(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.UserContext(), accountUserID(c), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) cancelDraft(c *fiber.Ctx) error {
	if err := h.manager.Cancel(c.UserContext(), accountUserID(c), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *draftHandlers) setSearchText(c *fiber.Ctx) error {
	var body struct {
		Text string
	}
	if err := c.BodyParser(&body); err != nil {
		return invalidBody(c)
	}

	session, err := h.manager.SetSearchText(c.UserContext(), accountUserID(c), c.Params("id"), body.Text)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(newDraftView(session))
}

// pickCandidate either appends the candidate or answers with the lines the rider has to choose from
func (h *draftHandlers) pickCandidate(c *fiber.Ctx) error {
	var candidate routebuilder.StopCandidate
	if err := c.BodyParser(&candidate); err != nil || len(candidate.Lines) == 0 || !candidate.TransportMode.Valid() {
		return invalidBody(c)
	}

	session, disambiguation, err := h.manager.Pick(c.UserContext(), accountUserID(c), c.Params("id"), candidate)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"Draft":          newDraftView(session),
		"Disambiguation": disambiguation,
	})
}

func (h *draftHandlers) appendStop(c *fiber.Ctx) error {
	var choice routebuilder.StopChoice
	if err := c.BodyParser(&choice); err != nil || choice.Name == "" || !choice.TransportMode.Valid() {
		return invalidBody(c)
	}

	session, err := h.manager.Append(c.UserContext(), accountUserID(c), c.Params("id"), choice)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) removeStop(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Stop index must be a number",
		})
	}

	session, err := h.manager.Remove(c.UserContext(), accountUserID(c), c.Params("id"), index)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) reorderStop(c *fiber.Ctx) error {
	var body struct {
		Index *int
	}
	if err := c.BodyParser(&body); err != nil || body.Index == nil {
		return invalidBody(c)
	}

	session, err := h.manager.Reorder(c.UserContext(), accountUserID(c), c.Params("id"), c.Params("key"), *body.Index)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(newDraftView(session))
}

func (h *draftHandlers) getValidation(c *fiber.Ctx) error {
	session, err := h.manager.Get(c.UserContext(), accountUserID(c), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(session.Draft.Validation())
}

func (h *draftHandlers) saveDraft(c *fiber.Ctx) error {
	route, err := h.manager.Save(c.UserContext(), accountUserID(c), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return sendCommuteRoute(c, route, fiber.StatusCreated)
}
