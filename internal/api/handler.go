package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/akarpov/oilpulse/internal/domain/dto"
	"github.com/akarpov/oilpulse/internal/domain/models"
	"github.com/akarpov/oilpulse/internal/service"
)

// pageSize is the fixed listing page size.
const pageSize = 50

// Handler provides HTTP handlers for the snapshot listing and the product
// catalog.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Translate them into a models.SnapshotFilter
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.SnapshotService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.SnapshotService) *Handler {
	return &Handler{svc: svc}
}

// ListSnapshots handles GET /api/v1/snapshots requests.
//
// Query Parameters:
//   - date_from, date_to (optional): inclusive date bounds, YYYY-MM-DD.
//   - instrument_code (optional, repeatable): exact codes, OR-matched.
//   - product (optional): substring match on the derived product name.
//   - price_from, price_to (optional): inclusive bounds on market_price;
//     rows with no market price are excluded when either bound is set.
//   - sort (optional): whitelisted sort label; unknown labels sort by date.
//   - dir (optional): "asc" or "desc" (default "desc").
//   - page (optional): 1-based page of 50 rows (default 1).
//
// An empty result is a normal 200 response with an empty items array, not an
// error: filters that exclude every row are expected.
//
// ListSnapshots godoc
// @Summary      List trading snapshots
// @Description  Returns one page of instrument trading snapshots matching the filters
// @Tags         snapshots
// @Produce      json
// @Param        date_from        query     string  false  "Start date (inclusive), YYYY-MM-DD"  example(2025-08-01)
// @Param        date_to          query     string  false  "End date (inclusive), YYYY-MM-DD"    example(2025-08-31)
// @Param        instrument_code  query     []string false "Instrument codes (repeatable)"       collectionFormat(multi)
// @Param        product          query     string  false  "Product name substring"
// @Param        price_from       query     string  false  "Minimum market price (inclusive)"
// @Param        price_to         query     string  false  "Maximum market price (inclusive)"
// @Param        sort             query     string  false  "Sort label (whitelisted)"
// @Param        dir              query     string  false  "Sort direction: asc or desc"
// @Param        page             query     int     false  "Page number (50 rows per page)"
// @Success      200  {object}  dto.SnapshotListResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse         "Bad Request"
// @Failure      500  {object}  dto.ErrorResponse         "Internal Error"
// @Router       /api/v1/snapshots [get]
func (h *Handler) ListSnapshots(c *gin.Context) {
	var f models.SnapshotFilter

	// ── Date bounds ───────────────────────────────────────────
	if s := c.Query("date_from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date_from format, expected YYYY-MM-DD", err))
			return
		}
		f.DateFrom = &parsed
	}
	if s := c.Query("date_to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date_to format, expected YYYY-MM-DD", err))
			return
		}
		f.DateTo = &parsed
	}

	// ── Instrument codes and product ──────────────────────────
	for _, code := range c.QueryArray("instrument_code") {
		if code = strings.TrimSpace(code); code != "" {
			f.InstrumentCodes = append(f.InstrumentCodes, code)
		}
	}
	f.Product = strings.TrimSpace(c.Query("product"))

	// ── Market price bounds ───────────────────────────────────
	if s := c.Query("price_from"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid price_from, expected a number", err))
			return
		}
		f.PriceFrom = &d
	}
	if s := c.Query("price_to"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid price_to, expected a number", err))
			return
		}
		f.PriceTo = &d
	}

	// ── Sorting ───────────────────────────────────────────────
	f.SortLabel = c.Query("sort")
	f.Descending = strings.ToLower(c.DefaultQuery("dir", "desc")) != "asc"

	// ── Pagination ────────────────────────────────────────────
	page := 1
	if s := c.Query("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid page, expected a positive integer", err))
			return
		}
		page = n
	}
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize

	// ── Query service ─────────────────────────────────────────
	items, total, err := h.svc.ListSnapshots(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch snapshots", err))
		return
	}

	resp := dto.SnapshotListResponse{
		Items:    make([]dto.SnapshotResponse, 0, len(items)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, s := range items {
		resp.Items = append(resp.Items, dto.NewSnapshotResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

// ListInstrumentCodes handles GET /api/v1/snapshots/codes requests.
//
// ListInstrumentCodes godoc
// @Summary      List instrument codes
// @Description  Returns the distinct instrument codes present in the store
// @Tags         snapshots
// @Produce      json
// @Success      200  {object}  map[string][]string  "Success"
// @Failure      500  {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/snapshots/codes [get]
func (h *Handler) ListInstrumentCodes(c *gin.Context) {
	codes, err := h.svc.ListInstrumentCodes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch instrument codes", err))
		return
	}
	if codes == nil {
		codes = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"codes": codes})
}

// CreateProduct handles POST /api/v1/products requests.
//
// CreateProduct godoc
// @Summary      Create a catalog product
// @Description  Adds a named product to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "Product to create"
// @Success      201   {object}  dto.ProductResponse  "Created"
// @Failure      400   {object}  dto.ErrorResponse    "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("name is required", err))
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyProductName) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("name is required", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to create product", err))
		return
	}

	c.JSON(http.StatusCreated, dto.ProductResponse{ID: p.ID, Name: p.Name})
}

// ListProducts handles GET /api/v1/products requests.
//
// ListProducts godoc
// @Summary      List catalog products
// @Tags         products
// @Produce      json
// @Success      200  {array}   dto.ProductResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch products", err))
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{ID: p.ID, Name: p.Name})
	}
	c.JSON(http.StatusOK, out)
}
