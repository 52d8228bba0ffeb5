package handlers

import (
	"errors"
	"log"

	"avatar-progression/progression"
	"avatar-progression/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error onto the HTTP status the Gateway expects.
func statusFor(err error) int {
	switch {
	case errors.Is(err, progression.ErrInvalidTraitID),
		errors.Is(err, progression.ErrInvalidAssetID),
		errors.Is(err, progression.ErrInvalidTier),
		errors.Is(err, progression.ErrNotABadge),
		errors.Is(err, progression.ErrAssetIdentityMismatch),
		errors.Is(err, services.ErrBadgeNotPurchasable):
		return fiber.StatusBadRequest
	case errors.Is(err, progression.ErrOwnershipVerificationFailed):
		return fiber.StatusForbidden
	case errors.Is(err, progression.ErrSequenceViolation),
		errors.Is(err, progression.ErrAlreadyPending),
		errors.Is(err, progression.ErrAlreadyMinted),
		errors.Is(err, progression.ErrAlreadyMerged),
		errors.Is(err, progression.ErrAlreadyInitialized):
		return fiber.StatusConflict
	case errors.Is(err, progression.ErrSupplyExhausted):
		return fiber.StatusGone
	case errors.Is(err, services.ErrGatewayFailed),
		errors.Is(err, services.ErrIndexerUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ [%s %s] %s: %v", c.Method(), c.Path(), msg, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}
