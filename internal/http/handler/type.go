package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mydocs/internal/service"
)

// typeRequest is the body of type create and update calls.
type typeRequest struct {
	Title        *string `json:"title" form:"title"`
	Abbreviation *string `json:"abbreviation" form:"abbreviation"`
}

// typeRouteError reports a missing type as 404 on the type routes themselves.
func typeRouteError(err error) error {
	if errors.Is(err, service.ErrTypeNotFound) {
		return &apiError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: "type not found", Err: err}
	}
	return err
}

func parseTypeRequest(c *fiber.Ctx) (service.TypeInput, error) {
	var req typeRequest
	if err := c.BodyParser(&req); err != nil {
		return service.TypeInput{}, badRequest("INVALID_BODY", "request body could not be parsed")
	}
	return service.TypeInput{Title: req.Title, Abbreviation: req.Abbreviation}, nil
}

// ListTypes returns every document type.
//
// @Summary List document types
// @Tags types
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /api/docs/types [get]
func ListTypes(svc service.TypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, "types retrieved", "types", items)
	}
}

// GetType returns a document type.
//
// @Summary Show a document type
// @Tags types
// @Produce json
// @Security BearerAuth
// @Param id path int true "Type ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Router /api/docs/types/{id} [get]
func GetType(svc service.TypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		tp, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return typeRouteError(err)
		}
		return respond(c, fiber.StatusOK, "type retrieved", "type", tp)
	}
}

// CreateType adds a document type.
//
// @Summary Create a document type
// @Tags types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body typeRequest true "title (max 30) and abbreviation (max 5)"
// @Success 201 {object} map[string]any
// @Failure 422 {object} errorPayload
// @Router /api/docs/types [post]
func CreateType(svc service.TypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseTypeRequest(c)
		if err != nil {
			return err
		}
		tp, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, "type created", "type", tp)
	}
}

// UpdateType changes the title and/or abbreviation of a document type.
//
// @Summary Update a document type
// @Tags types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Type ID"
// @Param body body typeRequest true "fields to change"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/docs/types/{id} [put]
func UpdateType(svc service.TypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		in, err := parseTypeRequest(c)
		if err != nil {
			return err
		}
		tp, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return typeRouteError(err)
		}
		return respond(c, fiber.StatusOK, "type updated", "type", tp)
	}
}

// DeleteType soft-deletes a document type.
//
// @Summary Delete a document type
// @Tags types
// @Produce json
// @Security BearerAuth
// @Param id path int true "Type ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Router /api/docs/types/{id} [delete]
func DeleteType(svc service.TypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return typeRouteError(err)
		}
		return respond(c, fiber.StatusOK, "type deleted", "", nil)
	}
}
