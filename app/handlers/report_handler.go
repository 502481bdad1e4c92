package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/openvarsity/inventory/app/dto"
	businessflow "github.com/openvarsity/inventory/business_flow"
)

// ReportHandlerInterface defines the contract for report handlers
type ReportHandlerInterface interface {
	GenerateReport(c fiber.Ctx) error
}

// ReportHandler handles report generation HTTP requests
type ReportHandler struct {
	reportFlow businessflow.ReportFlow
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportFlow businessflow.ReportFlow) *ReportHandler {
	return &ReportHandler{reportFlow: reportFlow}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ReportHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GenerateReport builds the requested report over the filtered inventory.
// The type selector picks the computed sections; an unrecognized selector
// returns the filtered rows alone.
// @Summary Generate Report
// @Tags Reports
// @Produce json
// @Param type query string false "Report type: overview, assets, financial, maintenance, depreciation"
// @Param search query string false "Substring over name, code, and serial number"
// @Param category query string false "Category ID; malformed input is ignored"
// @Param status query string false "Asset status"
// @Param start_date query string false "Purchase date lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Purchase date upper bound (YYYY-MM-DD)"
// @Param department query string false "Assigned user's department"
// @Success 200 {object} dto.APIResponse{data=dto.ReportPayload} "Report generated successfully"
// @Failure 500 {object} dto.APIResponse "Report query failed"
// @Router /api/v1/reports [get]
func (h *ReportHandler) GenerateReport(c fiber.Ctx) error {
	req := &dto.ReportRequest{
		Type:       c.Query("type"),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Status:     c.Query("status"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Department: c.Query("department"),
	}

	payload, err := h.reportFlow.BuildReport(createRequestContext(c, "/api/v1/reports"), req, principalFromContext(c))
	if err != nil {
		log.Println("Report generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Report generation failed", "REPORT_QUERY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Report generated successfully", payload)
}
