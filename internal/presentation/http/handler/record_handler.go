package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mobilehub-pos/internal/application/service"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/dto/response"
)

// RecordHandler serves the /customers collection
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func toInput(req *request.RecordRequest) *service.RecordInput {
	return &service.RecordInput{
		Name:       req.Name,
		Phone:      req.Phone,
		CNIC:       req.CNIC,
		Model:      req.Model,
		EMI:        req.EMI,
		Type:       req.Type,
		Price:      req.Price,
		PaidAmount: req.PaidAmount,
		Date:       req.Date,
	}
}

// List returns every record, optionally filtered by ?search=
func (h *RecordHandler) List(c *gin.Context) {
	records, err := h.recordService.ListRecords(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Records retrieved successfully", records)
}

// Create stores a new record
func (h *RecordHandler) Create(c *gin.Context) {
	var req request.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), toInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Record created successfully", record)
}

// Get returns one record
func (h *RecordHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.recordService.GetRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Record retrieved successfully", record)
}

// Update replaces the editable fields of a record
func (h *RecordHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), id, toInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Record updated successfully", record)
}

// Delete permanently removes a record
func (h *RecordHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
