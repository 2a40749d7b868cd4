package handlers

import (
	"strconv"
	"strings"

	"closetloop/internal/filter"
	applog "closetloop/internal/log"
	"closetloop/internal/services"
	"closetloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
}

// filtersFromQuery builds the typed filter set from query params.
// Multi-value params are comma separated: ?sizes=M,L&colors=Red.
func filtersFromQuery(c *fiber.Ctx) filter.FilterSet {
	split := func(s string) []string {
		if s == "" {
			return nil
		}
		parts := strings.Split(s, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	min, _ := strconv.ParseFloat(c.Query("priceMin"), 64)
	max, _ := strconv.ParseFloat(c.Query("priceMax"), 64)
	return filter.FilterSet{
		SearchText: strings.TrimSpace(c.Query("search")),
		Gender:     strings.TrimSpace(c.Query("gender")),
		Sizes:      split(c.Query("sizes")),
		Colors:     split(c.Query("colors")),
		Durations:  split(c.Query("durations")),
		PriceMin:   min,
		PriceMax:   max,
		Occasions:  split(c.Query("occasions")),
	}
}

// GET /api/products/all-products
func (h *ProductHandler) Browse(c *fiber.Ctx) error {
	products, err := h.Products.Browse(filtersFromQuery(c))
	if err != nil {
		applog.Error(c, "products.browse.fail", err, nil)
		return failErr(c, err)
	}
	return ok(c, products)
}

// GET /api/products/view-product/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, p)
}

type addProductInput struct {
	Name         string   `json:"name"`
	Size         string   `json:"size"`
	Color        string   `json:"color"`
	Gender       string   `json:"gender"`
	Condition    string   `json:"condition"`
	Image        string   `json:"image"`
	Price        *float64 `json:"price"`
	DurationDays int      `json:"durationDays"`
}

// POST /api/products/add-product
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var in addProductInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	name, okName := validate.Name(in.Name)
	if !okName {
		return fail(c, fiber.StatusBadRequest, "name must be 1-80 characters")
	}

	p, err := h.Products.Create(caller(c), services.NewListing{
		Name:         name,
		Size:         in.Size,
		Color:        in.Color,
		Gender:       in.Gender,
		Condition:    in.Condition,
		Image:        in.Image,
		Price:        in.Price,
		DurationDays: in.DurationDays,
	})
	if err != nil {
		applog.Security(c, "products.add.fail", map[string]any{"error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "products.add", map[string]any{"product_id": p.ID})
	return ok(c, p)
}

// GET /api/products/my-products
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	products, err := h.Products.ByOwner(caller(c).ID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, products)
}

// PATCH /api/products/toggle-availability/:id
func (h *ProductHandler) ToggleAvailability(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Products.ToggleAvailability(id, caller(c).ID)
	if err != nil {
		applog.Security(c, "products.toggle.fail", map[string]any{"product_id": id, "error": err.Error()})
		return failErr(c, err)
	}
	applog.Audit(c, "products.toggle", map[string]any{"product_id": id, "available": p.Available})
	return ok(c, p)
}
