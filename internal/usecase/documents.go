package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tourdesk/internal/document"
	"tourdesk/internal/document/cache"
	"tourdesk/internal/document/raster"
	"tourdesk/internal/document/viewmodel"
	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/customer"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/clock"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/pkg/sharetoken"

	"github.com/google/uuid"
)

// Cache page markers. Whole-document artifacts use pageAll so single
// page renders at index 0 get their own slot.
const pageAll = -1

// Renderer turns a booking view model into a PDF or a standalone HTML page.
type Renderer interface {
	Render(ctx context.Context, templateName string, data *viewmodel.Data) ([]byte, string, error)
	RenderHTML(templateName string, data *viewmodel.Data) (string, error)
}

// Rasterizer converts rendered PDFs to PNG.
type Rasterizer interface {
	PageCount(pdf []byte) (int, error)
	PageToPNG(pdf []byte, pageIndex int, zoom float64) ([]byte, error)
	LongPNG(pdf []byte, zoom float64, spacingPx int) ([]byte, error)
}

// ArtifactCache stores finished render outputs keyed by booking state.
type ArtifactCache interface {
	Get(k cache.Key) ([]byte, bool)
	Put(k cache.Key, data []byte) error
}

// TokenService issues and verifies public share tokens.
type TokenService interface {
	Issue(bookingID int64, now time.Time, departure *time.Time) (string, error)
	Verify(token string, bookingID int64, now time.Time) error
	BookingID(token string) (int64, error)
	IssuedAt(token string) (time.Time, error)
	ExpiresAt(token string) (time.Time, error)
}

// Document is a rendered artifact ready to stream to a guest.
type Document struct {
	Data      []byte
	MediaType string
	Filename  string
}

// PNGRequest selects the raster variant for the public PNG endpoint.
// Page nil means the long concatenated image; Zoom 0 uses the default.
type PNGRequest struct {
	Token string
	Page  *int
	Zoom  float64
}

// ShareLink is a freshly issued public link.
type ShareLink struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

type DocumentUseCase interface {
	FetchPDF(ctx context.Context, token string) (*Document, error)
	FetchPNG(ctx context.Context, req PNGRequest) (*Document, error)
	FetchPage(ctx context.Context, token string) (string, error)
	IssueShareLink(ctx context.Context, bookingID int64, actorID uuid.UUID) (*ShareLink, error)
	Warm(bookingID int64)
}

type documentUseCaseImpl struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	activityRepo ActivityRepository
	renderer     Renderer
	rasterizer   Rasterizer
	cache        ArtifactCache
	tokens       TokenService
	company      viewmodel.Company
	defaultZoom  float64
	deadline     time.Duration
	clock        clock.Clock
	logger       *slog.Logger
}

// DocumentOptions groups the render tunables so the constructor stays flat.
type DocumentOptions struct {
	Company     viewmodel.Company
	DefaultZoom float64
	Deadline    time.Duration
}

func NewDocumentUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	activityRepo ActivityRepository,
	renderer Renderer,
	rasterizer Rasterizer,
	artifactCache ArtifactCache,
	tokens TokenService,
	opts DocumentOptions,
	clk clock.Clock,
	logger *slog.Logger,
) DocumentUseCase {
	if opts.DefaultZoom <= 0 {
		opts.DefaultZoom = raster.DefaultZoom
	}
	if opts.Deadline <= 0 {
		opts.Deadline = 30 * time.Second
	}
	return &documentUseCaseImpl{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		activityRepo: activityRepo,
		renderer:     renderer,
		rasterizer:   rasterizer,
		cache:        artifactCache,
		tokens:       tokens,
		company:      opts.Company,
		defaultZoom:  opts.DefaultZoom,
		deadline:     opts.Deadline,
		clock:        clk,
		logger:       logger,
	}
}

func (d *documentUseCaseImpl) FetchPDF(ctx context.Context, token string) (*Document, error) {
	b, plan, err := d.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	key := cache.Key{
		BookingID:     b.ID(),
		MutationStamp: b.MutationStamp(),
		Kind:          string(plan.Kind),
		Scale:         0,
		Page:          pageAll,
	}
	filename := plan.Filename(b.Reference(), b.MutationStamp(), token, "pdf")

	if data, ok := d.cache.Get(key); ok {
		return &Document{Data: data, MediaType: "application/pdf", Filename: filename}, nil
	}

	pdf, mediaType, err := d.renderPDF(ctx, b, plan)
	if err != nil {
		return nil, err
	}
	d.store(key, pdf)

	return &Document{Data: pdf, MediaType: mediaType, Filename: filename}, nil
}

func (d *documentUseCaseImpl) FetchPNG(ctx context.Context, req PNGRequest) (*Document, error) {
	b, plan, err := d.resolve(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	zoom := req.Zoom
	if zoom <= 0 {
		zoom = d.defaultZoom
	}
	page := pageAll
	if req.Page != nil {
		page = *req.Page
	}

	key := cache.Key{
		BookingID:     b.ID(),
		MutationStamp: b.MutationStamp(),
		Kind:          string(plan.Kind),
		Scale:         raster.ScaleKey(zoom),
		Page:          page,
	}
	filename := plan.Filename(b.Reference(), b.MutationStamp(), req.Token, "png")

	if data, ok := d.cache.Get(key); ok {
		return &Document{Data: data, MediaType: "image/png", Filename: filename}, nil
	}

	pdf, err := d.pdfFor(ctx, b, plan, req.Token)
	if err != nil {
		return nil, err
	}

	var png []byte
	if req.Page != nil {
		png, err = d.rasterizer.PageToPNG(pdf, *req.Page, zoom)
	} else {
		png, err = d.rasterizer.LongPNG(pdf, zoom, 0)
	}
	if err != nil {
		return nil, err
	}
	d.store(key, png)

	return &Document{Data: png, MediaType: "image/png", Filename: filename}, nil
}

// FetchPage renders the public HTML landing page that embeds the
// document preview and download links.
func (d *documentUseCaseImpl) FetchPage(ctx context.Context, token string) (string, error) {
	b, _, err := d.resolve(ctx, token)
	if err != nil {
		return "", err
	}

	data, err := d.buildViewModel(ctx, b)
	if err != nil {
		return "", err
	}
	data.ShareToken = token

	return d.renderer.RenderHTML(document.TemplatePublicPage, data)
}

func (d *documentUseCaseImpl) IssueShareLink(ctx context.Context, bookingID int64, actorID uuid.UUID) (*ShareLink, error) {
	b, err := d.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := d.clock.Now()
	token, err := d.tokens.Issue(b.ID(), now, b.Schedule().DepartureDate)
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue share token")
	}

	// Older tokens stay valid until their own expiry; the stored token
	// only tracks the latest link shown in the back office.
	if err := d.bookingRepo.SetShareToken(ctx, b.ID(), token); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entry := booking.ActivityEntry{
		BookingID:   &bookingID,
		UserID:      &actorID,
		Action:      booking.ActionShareLinkIssued,
		Description: "share link issued (" + sharetoken.Prefix(token, 12) + "...)",
	}
	if err := d.activityRepo.Append(ctx, entry); err != nil {
		d.logger.Error("failed to append activity entry",
			"booking_id", bookingID, "action", entry.Action, "error", err)
	}

	expiresAt, _ := d.tokens.ExpiresAt(token)

	return &ShareLink{
		Token:     token,
		URL:       fmt.Sprintf("%s/public/booking/%s", d.company.BaseURL, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Warm pre-renders the booking's current PDF into the cache. Failures
// are logged only; the public endpoints will render on demand.
func (d *documentUseCaseImpl) Warm(bookingID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.deadline)
		defer cancel()

		b, err := d.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			d.logger.Warn("document warm-up skipped", "booking_id", bookingID, "error", err)
			return
		}
		plan, ok := document.PlanFor(b.Status(), d.logger)
		if !ok {
			return
		}

		key := cache.Key{
			BookingID:     b.ID(),
			MutationStamp: b.MutationStamp(),
			Kind:          string(plan.Kind),
			Scale:         0,
			Page:          pageAll,
		}
		if _, ok := d.cache.Get(key); ok {
			return
		}

		pdf, _, err := d.renderPDF(ctx, b, plan)
		if err != nil {
			d.logger.Warn("document warm-up render failed", "booking_id", bookingID, "error", err)
			return
		}
		d.store(key, pdf)
	}()
}

// resolve verifies the token and loads the booking plus its render plan.
// Every failure maps to a sentinel the handler turns into 404 so the
// public surface leaks nothing about why a link stopped working.
func (d *documentUseCaseImpl) resolve(ctx context.Context, token string) (*booking.Booking, document.Plan, error) {
	bookingID, err := d.tokens.BookingID(token)
	if err != nil {
		return nil, document.Plan{}, errs.Mark(err, errs.ErrTokenInvalid)
	}
	if err := d.tokens.Verify(token, bookingID, d.clock.Now()); err != nil {
		return nil, document.Plan{}, errs.Mark(err, errs.ErrTokenInvalid)
	}

	b, err := d.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, document.Plan{}, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, document.Plan{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// A token minted before the booking row existed can only belong to a
	// deleted-and-recreated booking that reuses the ID. Issuance truncates
	// to seconds, so the comparison does too.
	issuedAt, err := d.tokens.IssuedAt(token)
	if err != nil {
		return nil, document.Plan{}, errs.Mark(err, errs.ErrTokenInvalid)
	}
	if issuedAt.Before(b.CreatedAt().Truncate(time.Second)) {
		return nil, document.Plan{}, errs.Mark(sharetoken.ErrStale, errs.ErrTokenInvalid)
	}

	plan, ok := document.PlanFor(b.Status(), d.logger)
	if !ok {
		return nil, document.Plan{}, errs.Mark(errs.New("booking has no public document"), errs.ErrNoDocument)
	}
	return b, plan, nil
}

func (d *documentUseCaseImpl) renderPDF(ctx context.Context, b *booking.Booking, plan document.Plan) ([]byte, string, error) {
	data, err := d.buildViewModel(ctx, b)
	if err != nil {
		return nil, "", err
	}
	data.ShowReceiptBanner = plan.ReceiptBanner

	ctx, cancel := context.WithTimeout(ctx, d.deadline)
	defer cancel()

	return d.renderer.Render(ctx, plan.Template, data)
}

// pdfFor returns the booking's PDF, from cache when present, rendering
// otherwise. PNG requests reuse the PDF artifact instead of re-printing.
func (d *documentUseCaseImpl) pdfFor(ctx context.Context, b *booking.Booking, plan document.Plan, token string) ([]byte, error) {
	key := cache.Key{
		BookingID:     b.ID(),
		MutationStamp: b.MutationStamp(),
		Kind:          string(plan.Kind),
		Scale:         0,
		Page:          pageAll,
	}
	if data, ok := d.cache.Get(key); ok {
		return data, nil
	}
	pdf, _, err := d.renderPDF(ctx, b, plan)
	if err != nil {
		return nil, err
	}
	d.store(key, pdf)
	return pdf, nil
}

func (d *documentUseCaseImpl) buildViewModel(ctx context.Context, b *booking.Booking) (*viewmodel.Data, error) {
	var cust *customer.Customer
	c, err := d.customerRepo.FindByID(ctx, b.CustomerID())
	if err == nil {
		cust = c
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return viewmodel.Build(b, cust, d.clock.Now(), d.company), nil
}

func (d *documentUseCaseImpl) store(key cache.Key, data []byte) {
	if err := d.cache.Put(key, data); err != nil {
		d.logger.Warn("failed to cache render artifact",
			"booking_id", key.BookingID, "kind", key.Kind, "error", err)
	}
}
