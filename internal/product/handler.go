package product

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/fyx-store/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/featured", h.getFeatured)
	app.Get("/api/v1/product/:id", h.getProduct)
}

// RegisterProtectedRoutes expects a router that already enforces a session.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/product/:id/reviews", h.addReview)
}

// RegisterAdminRoutes mounts catalog management on an admin-only group.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/products", h.saveProduct)
	admin.Put("/products/:id", h.saveProduct)
	admin.Delete("/products/:id", h.deleteProduct)

	// dev-only, enabled when ALLOW_RESET_PRODUCTS=1
	admin.Post("/dev/reset-products", h.resetProducts)
}

// getProducts supports ?category= and ?q= the way the storefront grid does.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	q := c.Query("q")
	if category == "" && q == "" {
		return c.JSON(h.service.List())
	}
	return c.JSON(h.service.Filter(category, q))
}

func (h *Handler) getFeatured(c *fiber.Ctx) error {
	return c.JSON(h.service.Featured())
}

type productResponse struct {
	Product
	DefaultSelections map[string]string `json:"defaultSelections"`
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(productResponse{Product: p, DefaultSelections: p.DefaultSelections()})
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	return errs
}

func (h *Handler) saveProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if id := c.Params("id"); id != "" {
		p.ID = id
	}
	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	saved, created, err := h.service.Save(c.UserContext(), *p)
	if err != nil {
		if errors.Is(err, ErrNameMissing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	logging.FromContext(c.UserContext()).Info("product saved", "product_id", saved.ID, "created", created)
	if created {
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
	return c.JSON(saved)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) addReview(c *fiber.Ctx) error {
	r := new(Review)
	if err := c.BodyParser(r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p, err := h.service.AddReview(c.UserContext(), c.Params("id"), *r)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// resetProducts replaces the catalog with the posted list, or with the seed
// catalog when the body is not a product list.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "reset not allowed"})
	}
	var products []Product
	if err := c.BodyParser(&products); err != nil {
		products = Seed()
	}
	if err := h.service.ResetProducts(c.UserContext(), products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}
