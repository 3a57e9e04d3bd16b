package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Phoneshop-api/internal/application/dto"
	"github.com/jhoicas/Phoneshop-api/internal/application/receipt"
	"github.com/jhoicas/Phoneshop-api/internal/application/visibility"
	"github.com/jhoicas/Phoneshop-api/internal/application/workflow"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// Rutas por tipo de registro.
var entityPaths = map[domain.EntityType]string{
	domain.EntityTradeIn:  "trade-ins",
	domain.EntityRepair:   "repairs",
	domain.EntityLead:     "leads",
	domain.EntityDelivery: "deliveries",
	domain.EntitySale:     "sales",
}

// assignable tipos con asignado editable.
var assignable = []domain.EntityType{domain.EntityRepair, domain.EntityLead, domain.EntityDelivery}

// WorkflowHandler alta, consulta, transición y asignación de registros.
type WorkflowHandler struct {
	workflow *workflow.UseCase
	views    *visibility.UseCase
	receipts *receipt.ReceiptUseCase
	log      *logger.Logger
}

func NewWorkflowHandler(wf *workflow.UseCase, views *visibility.UseCase, receipts *receipt.ReceiptUseCase, log *logger.Logger) *WorkflowHandler {
	return &WorkflowHandler{workflow: wf, views: views, receipts: receipts, log: log}
}

// Register monta las rutas de un tipo bajo el grupo protegido.
func (h *WorkflowHandler) Register(api fiber.Router, t domain.EntityType) {
	g := api.Group("/" + entityPaths[t])
	g.Post("/", h.create(t))
	g.Get("/", h.list(t))
	if t == domain.EntityTradeIn {
		g.Get("/serial-check", h.SerialCheck)
	}
	if t == domain.EntitySale {
		g.Get("/:id/receipt", h.Receipt)
	}
	g.Get("/:id", h.get(t))
	if t.IsWorkflow() {
		g.Post("/:id/transitions", h.transition(t))
	}
	for _, a := range assignable {
		if a == t {
			g.Post("/:id/assignee", h.assign(t))
		}
	}
}

// create POST /api/{type}
func (h *WorkflowHandler) create(t domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			out any
			err error
		)
		actor := GetActor(c)
		switch t {
		case domain.EntityTradeIn:
			var in dto.CreateTradeInRequest
			if err := c.BodyParser(&in); err != nil {
				return invalidBody(c)
			}
			out, err = h.workflow.CreateTradeIn(c.Context(), actor, in)
		case domain.EntityRepair:
			var in dto.CreateRepairRequest
			if err := c.BodyParser(&in); err != nil {
				return invalidBody(c)
			}
			out, err = h.workflow.CreateRepair(c.Context(), actor, in)
		case domain.EntityLead:
			var in dto.CreateLeadRequest
			if err := c.BodyParser(&in); err != nil {
				return invalidBody(c)
			}
			out, err = h.workflow.CreateLead(c.Context(), actor, in)
		case domain.EntityDelivery:
			var in dto.CreateDeliveryRequest
			if err := c.BodyParser(&in); err != nil {
				return invalidBody(c)
			}
			out, err = h.workflow.CreateDelivery(c.Context(), actor, in)
		case domain.EntitySale:
			var in dto.CreateSaleRequest
			if err := c.BodyParser(&in); err != nil {
				return invalidBody(c)
			}
			out, err = h.workflow.CreateSale(c.Context(), actor, in)
		default:
			return fiber.ErrNotFound
		}
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// list GET /api/{type}?status=a,b&overdue=true&limit=&offset=
func (h *WorkflowHandler) list(t domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.ListRequest
		if err := c.QueryParser(&in); err != nil {
			return invalidQuery(c)
		}
		out, err := h.views.List(c.Context(), GetActor(c), t, in)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(out)
	}
}

// get GET /api/{type}/:id
func (h *WorkflowHandler) get(t domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.views.Get(c.Context(), GetActor(c), t, c.Params("id"))
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(out)
	}
}

// transition POST /api/{type}/:id/transitions
func (h *WorkflowHandler) transition(t domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.TransitionRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		out, err := h.workflow.Transition(c.Context(), GetActor(c), t, c.Params("id"), in)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(out)
	}
}

// assign POST /api/{type}/:id/assignee
func (h *WorkflowHandler) assign(t domain.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.AssignRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		out, err := h.workflow.Assign(c.Context(), GetActor(c), t, c.Params("id"), in)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return c.JSON(out)
	}
}

// SerialCheck GET /api/trade-ins/serial-check?serial=
func (h *WorkflowHandler) SerialCheck(c *fiber.Ctx) error {
	out, err := h.views.CheckSerial(c.Context(), GetActor(c), strings.TrimSpace(c.Query("serial")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt GET /api/sales/:id/receipt (application/pdf)
func (h *WorkflowHandler) Receipt(c *fiber.Ctx) error {
	pdf, number, err := h.receipts.SaleReceipt(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+number+`.pdf"`)
	return c.Send(pdf)
}
