// handlers/progression_routes.go
package handlers

import (
	"strconv"

	"avatar-progression/middleware"
	"avatar-progression/progression"
	"avatar-progression/services"

	"github.com/gofiber/fiber/v2"
)

type assetRequest struct {
	AssetID   uint8  `json:"asset_id"`
	TokenMint string `json:"token_mint"`
}

type traitRequest struct {
	TraitMint string `json:"trait_mint"`
}

// ProgressionServices bundles everything the routes call into.
type ProgressionServices struct {
	Catalog  *progression.Catalog
	Traits   *services.TraitService
	Badges   *services.BadgeService
	Rankings *services.RankingService
	History  *services.ProgressService
}

func SetupProgressionRoutes(app *fiber.App, svc ProgressionServices) {
	// 🔓 Public routes: Gateway auth only
	app.Get("/catalog", func(c *fiber.Ctx) error {
		return c.JSON(svc.Catalog.All())
	})

	app.Get("/supply", func(c *fiber.Ctx) error {
		lines, err := svc.Badges.Supply.Report(svc.Badges.DB)
		if err != nil {
			return fail(c, "failed to read badge supply", err)
		}
		return c.JSON(lines)
	})

	app.Get("/avatars/:mint/progress", func(c *fiber.Ctx) error {
		mint := c.Params("mint")
		traits, err := svc.Traits.Get(mint)
		if err != nil {
			return fail(c, "failed to get traits", err)
		}
		ranking, err := svc.Rankings.View(mint)
		if err != nil {
			return fail(c, "failed to get ranking", err)
		}
		return c.JSON(fiber.Map{
			"avatar_mint": mint,
			"traits":      traits,
			"ranking":     ranking,
		})
	})

	app.Get("/avatars/:mint/history", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))
		events, total, err := svc.History.History(c.Params("mint"), page, size)
		if err != nil {
			return fail(c, "failed to get history", err)
		}
		return c.JSON(fiber.Map{
			"events": events,
			"total":  total,
			"page":   page,
		})
	})

	// 🔐 Secured routes: holder context required
	secured := app.Group("/s", middleware.HolderContextMiddleware())

	secured.Post("/avatars/:mint/traits/init", func(c *fiber.Ctx) error {
		view, err := svc.Traits.Initialize(c.UserContext(), holderOf(c), c.Params("mint"))
		if err != nil {
			return fail(c, "trait initialization failed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	secured.Post("/avatars/:mint/traits", func(c *fiber.Ctx) error {
		var req traitRequest
		if err := c.BodyParser(&req); err != nil || req.TraitMint == "" {
			return badRequest(c, "trait_mint is required", err)
		}
		view, err := svc.Traits.Merge(c.UserContext(), holderOf(c), c.Params("mint"), req.TraitMint)
		if err != nil {
			return fail(c, "trait merge failed", err)
		}
		return c.JSON(view)
	})

	secured.Post("/avatars/:mint/badges/mint", func(c *fiber.Ctx) error {
		var req assetRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		view, err := svc.Badges.MintBadge(c.UserContext(), holderOf(c), c.Params("mint"), progression.AssetID(req.AssetID), req.TokenMint)
		if err != nil {
			return fail(c, "badge mint failed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	secured.Post("/avatars/:mint/badges/merge", func(c *fiber.Ctx) error {
		var req assetRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		view, err := svc.Badges.MergeBadge(c.UserContext(), holderOf(c), c.Params("mint"), progression.AssetID(req.AssetID), req.TokenMint)
		if err != nil {
			return fail(c, "badge merge failed", err)
		}
		return c.JSON(view)
	})

	secured.Post("/assets/purchase", func(c *fiber.Ctx) error {
		var req assetRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		d, err := svc.Badges.Purchase(c.UserContext(), holderOf(c), progression.AssetID(req.AssetID), req.TokenMint)
		if err != nil {
			return fail(c, "purchase failed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	})

	// Admin endpoints
	secured.Post("/admin/rankings/migrate", func(c *fiber.Ctx) error {
		type Req struct {
			BatchSize int `json:"batch_size"`
		}
		var req Req
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "invalid JSON", err)
			}
		}
		n, err := svc.Rankings.MigrateAll(req.BatchSize)
		if err != nil {
			return fail(c, "ranking migration failed", err)
		}
		return c.JSON(fiber.Map{
			"message":  "rankings migrated",
			"migrated": n,
		})
	})
}

func holderOf(c *fiber.Ctx) string {
	holder, _ := c.Locals(middleware.LocalHolder).(string)
	return holder
}

func badRequest(c *fiber.Ctx, msg string, err error) error {
	body := fiber.Map{"error": msg}
	if err != nil {
		body["cause"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
