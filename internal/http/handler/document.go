package handler

import (
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mydocs/internal/auth"
	"mydocs/internal/service"
)

// updateDocumentRequest is the body of PUT /api/docs/my-docs/:id.
type updateDocumentRequest struct {
	TypeID *int64 `json:"type_id" form:"type_id"`
	File   string `json:"file" form:"file"`
}

// ListDocuments returns the caller's documents.
//
// @Summary List my documents
// @Tags my-docs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} errorPayload
// @Router /api/docs/my-docs [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		items, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, "documents retrieved", "myDocs", items)
	}
}

// CreateDocument stores an uploaded file as a new document of the caller.
//
// @Summary Upload a document
// @Tags my-docs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param type_id formData int true "Document type"
// @Param file formData file true "Document file"
// @Success 201 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/docs/my-docs [post]
func CreateDocument(svc service.DocumentService, maxUploadSize int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		typeID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("type_id")), 10, 64)
		if err != nil || typeID <= 0 {
			return &service.ValidationError{Field: "type_id", Message: "must be a positive integer"}
		}

		doc, err := svc.Create(c.UserContext(), userID, typeID, readUpload(c, maxUploadSize))
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusCreated, "document created", "doc", doc)
	}
}

// GetDocument returns one of the caller's documents.
//
// @Summary Show a document
// @Tags my-docs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]any
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/docs/my-docs/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}
		doc, err := svc.Get(c.UserContext(), id, userID)
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, "document retrieved", "myDoc", doc)
	}
}

// UpdateDocument changes the type and/or replaces the file of a document.
//
// @Summary Update a document
// @Tags my-docs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body updateDocumentRequest true "type_id and/or file as <mime-type>;base64,<data>"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/docs/my-docs/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var req updateDocumentRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest("INVALID_BODY", "request body could not be parsed")
			}
		}

		doc, err := svc.Update(c.UserContext(), id, userID, service.UpdateInput{TypeID: req.TypeID, File: req.File})
		if err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, "document updated", "myDoc", doc)
	}
}

// DeleteDocument removes one of the caller's documents.
//
// @Summary Delete a document
// @Tags my-docs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]any
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/docs/my-docs/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id, userID); err != nil {
			return err
		}
		return respond(c, fiber.StatusOK, "document deleted", "", nil)
	}
}

// DownloadDocument streams the stored file of one of the caller's documents.
//
// @Summary Download a document file
// @Tags my-docs
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/docs/my-docs/{id}/file [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}

		rc, info, err := svc.Open(c.UserContext(), id, userID)
		if err != nil {
			return err
		}

		c.Attachment(path.Base(info.Key))
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		size := int(info.Size)
		if size <= 0 {
			size = -1
		}
		return c.SendStream(rc, size)
	}
}

// readUpload applies the upload validity check to the multipart "file" part:
// present, non-empty, openable, fully readable and within maxSize bytes.
func readUpload(c *fiber.Ctx, maxSize int64) service.Upload {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.Upload{}
	}
	up := service.Upload{Filename: fh.Filename}
	if fh.Size <= 0 || (maxSize > 0 && fh.Size > maxSize) {
		return up
	}

	f, err := fh.Open()
	if err != nil {
		return up
	}
	defer f.Close()

	var r io.Reader = f
	if maxSize > 0 {
		r = io.LimitReader(f, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil || len(content) == 0 || (maxSize > 0 && int64(len(content)) > maxSize) {
		return up
	}

	up.Content = content
	up.Valid = true
	return up
}
