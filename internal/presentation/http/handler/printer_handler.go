package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/application/service"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
)

// PrinterHandler handles receipt previews and thermal printing.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	r, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": r,
			"warning": err.Error(),
		})
		return
	}
	response.OK(c, "Test page sent to printer", gin.H{"receipt": r})
}

// PrintReceipt prints the receipt of a record.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	r, err := h.printerService.PrintRecord(c.Request.Context(), id)
	if err != nil {
		if r != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": r,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", gin.H{"receipt": r})
}

// GetReceipt renders a record's receipt as json (default), text or html.
func (h *PrinterHandler) GetReceipt(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.printerService.ReceiptFor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		response.OK(c, "Receipt generated", r)
	case "text":
		c.String(http.StatusOK, receipt.RenderText(r, h.printerService.Width()))
	case "html":
		var buf bytes.Buffer
		if err := receipt.RenderHTML(&buf, r); err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	default:
		response.BadRequest(c, "Invalid format. Use json, text or html")
	}
}
