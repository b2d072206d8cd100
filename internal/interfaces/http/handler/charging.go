package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	chargingapp "github.com/charging/backend/internal/application/charging"
)

// maxLedgerSize bounds uploaded ledger documents (10MB)
const maxLedgerSize = 10 << 20

const welcomePage = `<html>
<head><title> Charging service. </title></head>
<body>
<p> Insert input json data: </p>
<form action="/" enctype="multipart/form-data" method="post">
<label for="file">Select a file:</label>
<input type="file" id="file" name="file">
<input type="submit" value="Submit">
</form>
</body>
</html>
`

const reportPage = `<html>
<head><title> Charging service. </title></head>
<body>
<pre>
%s
</pre>
</body>
</html>
`

// ChargingHandler serves the ledger upload form and the statement runs
type ChargingHandler struct {
	BaseHandler
	service *chargingapp.StatementService
}

// NewChargingHandler creates a new ChargingHandler
func NewChargingHandler(service *chargingapp.StatementService) *ChargingHandler {
	return &ChargingHandler{service: service}
}

// UploadForm godoc
//
//	@ID				getUploadForm
//	@Summary		Ledger upload form
//	@Description	Returns the HTML form for uploading a usage ledger file
//	@Tags			charging
//	@Produce		html
//	@Success		200	{string}	string	"HTML upload form"
//	@Router			/ [get]
func (h *ChargingHandler) UploadForm(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
}

// Run godoc
//
//	@ID				runCharging
//	@Summary		Run all pricing policies over an uploaded ledger
//	@Description	Accepts a ledger as a multipart file upload (text report) or as a raw JSON body (JSON report)
//	@Tags			charging
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		html
//	@Produce		json
//	@Param			file	formData	file	false	"Ledger JSON file"
//	@Success		200		{string}	string	"Report"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/ [post]
func (h *ChargingHandler) Run(c *gin.Context) {
	switch c.ContentType() {
	case "multipart/form-data":
		h.runMultipart(c)
	case "application/json":
		h.runJSON(c)
	default:
		h.UnsupportedMediaType(c, "Content format not understood")
	}
}

// runMultipart reads the uploaded ledger file and renders the text report
// inside the HTML result page.
func (h *ChargingHandler) runMultipart(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxLedgerSize {
		h.PayloadTooLarge(c, "file exceeds maximum size of 10MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxLedgerSize))
	if err != nil {
		h.InternalError(c, "failed to read uploaded file")
		return
	}

	statements, err := h.service.GenerateStatements(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	report := chargingapp.RenderText(statements)
	page := fmt.Sprintf(reportPage, report)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// runJSON treats the request body as the ledger document and returns the
// JSON report document directly, without the API envelope.
func (h *ChargingHandler) runJSON(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLedgerSize))
	if err != nil {
		h.BadRequest(c, "failed to read request body")
		return
	}

	statements, err := h.service.GenerateStatements(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, chargingapp.BuildReport(statements))
}

// Statements godoc
//
//	@ID				createStatements
//	@Summary		Generate charging statements
//	@Description	Runs all pricing policies over the ledger in the request body
//	@Tags			charging
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	APIResponse[chargingapp.Report]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/statements [post]
func (h *ChargingHandler) Statements(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLedgerSize))
	if err != nil {
		h.BadRequest(c, "failed to read request body")
		return
	}

	statements, err := h.service.GenerateStatements(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, chargingapp.BuildReport(statements))
}

// RegisterRoutes registers the versioned charging API routes
func (h *ChargingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/statements", h.Statements)
}

// RegisterRootRoutes registers the upload form and report routes at the
// server root, alongside the versioned API.
func (h *ChargingHandler) RegisterRootRoutes(engine *gin.Engine) {
	engine.GET("/", h.UploadForm)
	engine.POST("/", h.Run)
}
