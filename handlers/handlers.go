// Package handlers exposes the HTTP surface. Handlers validate input,
// call one service or adapter and relay the result; errors flow to the
// fiber error handler which maps the taxonomy to statuses.
package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gottatrackem/backend/adapters"
	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/config"
	"github.com/gottatrackem/backend/database"
	"github.com/gottatrackem/backend/models"
	"github.com/gottatrackem/backend/services"
	"github.com/gottatrackem/backend/utils"
)

const (
	defaultSetsPageSize  = 250
	defaultCardsPageSize = 50
	maxScanImageBytes    = 10 << 20
)

// WebApp holds the handler dependencies.
type WebApp struct {
	cfg        *config.Config
	db         *database.DB
	catalog    adapters.CatalogAdapter
	pricing    adapters.PricingAdapter
	scans      *services.ScanService
	collection *services.CollectionService
	shares     *services.ShareService
}

func NewWebApp(
	cfg *config.Config,
	db *database.DB,
	catalog adapters.CatalogAdapter,
	pricing adapters.PricingAdapter,
	scans *services.ScanService,
	collection *services.CollectionService,
	shares *services.ShareService,
) *WebApp {
	return &WebApp{
		cfg:        cfg,
		db:         db,
		catalog:    catalog,
		pricing:    pricing,
		scans:      scans,
		collection: collection,
		shares:     shares,
	}
}

// RegisterRoutes attaches every endpoint to the fiber app.
func (w *WebApp) RegisterRoutes(app *fiber.App) {
	app.Get("/", w.HealthCheck)
	app.Get("/test", w.StoreDiagnostics)

	app.Get("/catalog/sets", w.ListSets)
	app.Get("/catalog/cards", w.SearchCards)

	app.Post("/pricing", w.GetPrices)
	app.Post("/scan/identify", w.ScanIdentify)

	app.Get("/users/:userId/collection", w.GetCollection)
	app.Post("/users/:userId/collection", w.AddToCollection)
	app.Get("/users/:userId/activity", w.GetActivity)

	app.Post("/share/create", w.CreateShare)
}

func (w *WebApp) HealthCheck(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{"message": "Gotta Track 'Em backend ready"}, "")
}

// StoreDiagnostics reports the document store state. The three states are
// distinct: never configured, configured but unreachable, and connected.
func (w *WebApp) StoreDiagnostics(c *fiber.Ctx) error {
	diag := models.StoreDiagnostics{
		Backend:          "Running",
		Database:         "Not Configured",
		DatabaseURL:      setOrNot(w.cfg.DB.URI != ""),
		DatabaseName:     setOrNot(w.cfg.DB.Database != ""),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if w.db == nil {
		return utils.SendSuccess(c, diag, "")
	}

	if err := w.db.Ping(c.Context()); err != nil {
		diag.Database = "Configured but Unreachable"
		return utils.SendSuccess(c, diag, "")
	}

	names, err := w.db.ListCollectionNames(c.Context(), 10)
	if err != nil {
		diag.Database = "Connected but Erroring"
		diag.ConnectionStatus = "Connected"
		return utils.SendSuccess(c, diag, "")
	}

	diag.Database = "Connected & Working"
	diag.ConnectionStatus = "Connected"
	diag.Collections = names
	return utils.SendSuccess(c, diag, "")
}

func setOrNot(set bool) string {
	if set {
		return "Set"
	}
	return "Not Set"
}

func (w *WebApp) ListSets(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", defaultSetsPageSize)

	sets, err := w.catalog.ListSets(c.Context(), page, pageSize)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, sets)
}

func (w *WebApp) SearchCards(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return apperrors.NewValidation("q", "query parameter q is required")
	}
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", defaultCardsPageSize)

	cards, err := w.catalog.SearchCards(c.Context(), query, page, pageSize)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, cards)
}

// GetPrices expects a bare JSON array of integer product ids.
func (w *WebApp) GetPrices(c *fiber.Ctx) error {
	var productIDs []int64
	if err := c.BodyParser(&productIDs); err != nil {
		return apperrors.NewValidation("body", "body must be a JSON array of integer product ids")
	}
	if len(productIDs) == 0 {
		return apperrors.NewValidation("body", "at least one product id is required")
	}

	prices, err := w.pricing.GetPricesForProducts(c.Context(), productIDs)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, prices)
}

func (w *WebApp) ScanIdentify(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidation("file", "multipart file upload is required")
	}
	if fileHeader.Size > maxScanImageBytes {
		return apperrors.NewValidation("file", "image exceeds the size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidation("file", "failed to open uploaded file")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewValidation("file", "failed to read uploaded file")
	}

	result, err := w.scans.Identify(c.Context(), image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, result)
}

func (w *WebApp) GetCollection(c *fiber.Ctx) error {
	if err := w.storeReady(); err != nil {
		return err
	}

	cards, err := w.collection.ListCards(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, cards)
}

func (w *WebApp) AddToCollection(c *fiber.Ctx) error {
	if err := w.storeReady(); err != nil {
		return err
	}

	var req models.AddUserCardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("body", "invalid request body")
	}

	result, err := w.collection.AddCard(c.Context(), c.Params("userId"), &req)
	if err != nil {
		return err
	}
	return utils.SendCreated(c, result, "card added to collection")
}

func (w *WebApp) GetActivity(c *fiber.Ctx) error {
	if err := w.storeReady(); err != nil {
		return err
	}

	limit := int64(queryInt(c, "limit", 50))
	entries, err := w.collection.RecentActivity(c.Context(), c.Params("userId"), limit)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, fiber.StatusOK, entries)
}

func (w *WebApp) CreateShare(c *fiber.Ctx) error {
	if err := w.storeReady(); err != nil {
		return err
	}

	var req models.ShareCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("body", "invalid request body")
	}

	share, err := w.shares.Create(c.Context(), &req)
	if err != nil {
		return err
	}
	return utils.SendCreated(c, fiber.Map{"token": share.Token}, "share token created")
}

func (w *WebApp) storeReady() error {
	if w.db == nil {
		return &apperrors.StorageUnavailable{Reason: "document store not configured"}
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
