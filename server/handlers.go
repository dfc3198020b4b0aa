package server

import (
	"bytes"
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bilingual-pdf/generator"
	"bilingual-pdf/template"
)

// Generator produces documents for a reference.
type Generator interface {
	PDF(ctx context.Context, ref string) (*generator.Result, error)
	EPUB(ctx context.Context, ref string) (*generator.Result, error)
	HTML(ctx context.Context, ref string) (*generator.Result, error)
}

type CheckHandler struct{}

func NewCheckHandler() *CheckHandler {
	return &CheckHandler{}
}

func (h CheckHandler) HandleHealthy(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"result": "ok"})
}

type DocumentHandler struct {
	gen Generator
}

func NewDocumentHandler(gen Generator) *DocumentHandler {
	return &DocumentHandler{gen: gen}
}

func (h *DocumentHandler) HandleIndex(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := template.IndexHTML().Render(c.UserContext(), &buf); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *DocumentHandler) HandleGeneratePDF(c *fiber.Ctx) error {
	params, err := parseBody(c)
	if err != nil {
		return err
	}
	res, err := h.gen.PDF(c.UserContext(), params.TextRef)
	if err != nil {
		return err
	}
	c.Set("X-Page-Count", strconv.Itoa(res.Pages))
	return sendAttachment(c, res)
}

func (h *DocumentHandler) HandleGenerateEPUB(c *fiber.Ctx) error {
	params, err := parseBody(c)
	if err != nil {
		return err
	}
	res, err := h.gen.EPUB(c.UserContext(), params.TextRef)
	if err != nil {
		return err
	}
	return sendAttachment(c, res)
}

func (h *DocumentHandler) HandlePreview(c *fiber.Ctx) error {
	var params GenerateParams
	if err := c.QueryParser(&params); err != nil {
		return ErrBadRequest()
	}
	params.Normalize()
	if errors := params.Validate(); len(errors) > 0 {
		return NewValidationError(errors)
	}

	res, err := h.gen.HTML(c.UserContext(), params.TextRef)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderETag, res.ETag)
	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Send(res.Data)
}

func parseBody(c *fiber.Ctx) (*GenerateParams, error) {
	var params GenerateParams
	if err := c.BodyParser(&params); err != nil {
		return nil, ErrBadRequest()
	}
	params.Normalize()
	if errors := params.Validate(); len(errors) > 0 {
		return nil, NewValidationError(errors)
	}
	return &params, nil
}

func sendAttachment(c *fiber.Ctx, res *generator.Result) error {
	c.Set(fiber.HeaderETag, res.ETag)
	if c.Get(fiber.HeaderIfNoneMatch) == res.ETag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Send(res.Data)
}
