package docgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Action is what the caller wants done with a rendered document.
type Action string

const (
	ActionDownload Action = "download"
	ActionPreview  Action = "preview"
)

// ParseAction validates an action name. Empty means download.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case "", ActionDownload:
		return ActionDownload, nil
	case ActionPreview:
		return ActionPreview, nil
	}
	return "", fmt.Errorf("unknown action %q (use download or preview)", s)
}

// State is the terminal state of a generation.
type State string

const (
	StateSavedToFile  State = "saved_to_file"
	StateViewableBlob State = "viewable_blob"
)

// Saver persists a downloaded document under its file name.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Viewer publishes a preview and returns a URL or handle that dereferences
// to the PDF bytes.
type Viewer interface {
	Publish(ctx context.Context, data []byte) (string, error)
}

// Result is the outcome of Generate. Warnings lists every degraded step.
type Result struct {
	Action     Action   `json:"action"`
	State      State    `json:"state"`
	FileName   string   `json:"file_name"`
	PDF        []byte   `json:"-"`
	ViewerURL  string   `json:"url,omitempty"`
	ShowViewer bool     `json:"show_viewer"`
	Pages      int      `json:"pages"`
	Warnings   []string `json:"warnings"`
}

// Options configures a Generator. Only Fonts is strongly recommended; every
// other field has a working zero value.
type Options struct {
	Fonts      FontSource
	FontFamily string
	Assets     AssetResolver
	Saver      Saver
	Viewer     Viewer
	Now        func() time.Time
	Logger     zerolog.Logger
}

// Generator renders documents. It is safe for concurrent use: every call
// builds its own canvas and the only shared state lives in the FontSource.
type Generator struct {
	fonts  FontSource
	family string
	assets AssetResolver
	saver  Saver
	viewer Viewer
	now    func() time.Time
	log    zerolog.Logger
}

var ErrNoDocument = errors.New("docgen: no document")

func NewGenerator(opts Options) *Generator {
	g := &Generator{
		fonts:  opts.Fonts,
		family: opts.FontFamily,
		assets: opts.Assets,
		saver:  opts.Saver,
		viewer: opts.Viewer,
		now:    opts.Now,
		log:    opts.Logger,
	}
	if g.family == "" {
		g.family = "THSarabunNew"
	}
	if g.assets == nil {
		g.assets = LocalAssets{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// Generate renders doc and hands the bytes to the saver (download) or the
// viewer (preview). Missing data and asset failures never fail the call;
// they show up in Result.Warnings.
func (g *Generator) Generate(ctx context.Context, action Action, doc *Document, profile *BusinessProfile, catalog Catalog) (*Result, error) {
	if action != ActionDownload && action != ActionPreview {
		return nil, fmt.Errorf("docgen: unknown action %q", action)
	}
	if doc == nil {
		return nil, ErrNoDocument
	}

	rendered, err := g.Render(ctx, doc, profile, catalog)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Action:   action,
		FileName: doc.FileName(),
		PDF:      rendered.PDF,
		Pages:    rendered.Pages,
		Warnings: rendered.Warnings,
	}

	switch action {
	case ActionDownload:
		if g.saver != nil {
			if err := g.saver.Save(ctx, res.FileName, res.PDF); err != nil {
				return nil, fmt.Errorf("docgen: save %s: %w", res.FileName, err)
			}
		}
		res.State = StateSavedToFile
	case ActionPreview:
		if g.viewer != nil {
			url, err := g.viewer.Publish(ctx, res.PDF)
			if err != nil {
				return nil, fmt.Errorf("docgen: publish preview: %w", err)
			}
			res.ViewerURL = url
		}
		res.State = StateViewableBlob
		res.ShowViewer = true
	}

	g.log.Info().
		Str("document", doc.Number).
		Str("type", doc.Type.String()).
		Str("action", string(action)).
		Int("pages", res.Pages).
		Int("warnings", len(res.Warnings)).
		Msg("document generated")

	return res, nil
}

// Rendered is the raw output of Render.
type Rendered struct {
	PDF      []byte
	Pages    int
	Warnings []string
}

// Render lays out doc on a fresh PDF canvas.
func (g *Generator) Render(ctx context.Context, doc *Document, profile *BusinessProfile, catalog Catalog) (*Rendered, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if profile == nil {
		profile = &BusinessProfile{}
	}

	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		g.log.Warn().Str("document", doc.Number).Str("type", doc.Type.String()).Msg(msg)
	}

	font := g.loadFont(ctx, warn)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface, degraded, err := newPDFSurface(font, g.family, doc.Number, g.now())
	if err != nil {
		warn("%v; using %s", err, fallbackFamily)
	}
	if degraded {
		g.log.Debug().Str("document", doc.Number).Msg("rendering with core font")
	}

	logo := g.loadAsset(ctx, "logo", profile.Logo, warn)
	var proof []byte
	if doc.Payment != nil {
		proof = g.loadAsset(ctx, "payment proof", doc.Payment.ProofImage, warn)
	}

	pages := draw(surface, doc, profile, catalog, logo, proof, g.now, warn)

	data, err := surface.Bytes()
	if err != nil {
		return nil, fmt.Errorf("docgen: %w", err)
	}
	return &Rendered{PDF: data, Pages: pages, Warnings: warnings}, nil
}

// draw runs the layout on any surface and reports the page count.
func draw(s Surface, doc *Document, profile *BusinessProfile, catalog Catalog, logo, proof []byte, now func() time.Time, warn func(string, ...any)) int {
	date := doc.Date
	if date.IsZero() {
		date = now()
	}

	pages := &pageCounter{Surface: s, n: 1}
	r := &renderer{
		s:       pages,
		desc:    DescriptorFor(doc.Type),
		doc:     doc,
		profile: profile,
		date:    date,
		warn:    warn,
	}

	r.drawHeader(logo)
	r.drawParties()
	lastY := r.renderTable(doc.Items, catalog, tableStartY)
	r.drawFooter(lastY, ComputeVat(doc.StoredTotal, doc.VatMode))
	if r.desc.Payment && proof != nil {
		r.drawProof(proof)
	}
	return pages.n
}

type pageCounter struct {
	Surface
	n int
}

func (p *pageCounter) AddPage() {
	p.n++
	p.Surface.AddPage()
}

func (g *Generator) loadFont(ctx context.Context, warn func(string, ...any)) []byte {
	if g.fonts == nil {
		warn("font: no font configured; using %s", fallbackFamily)
		return nil
	}
	data, err := g.fonts.Load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			warn("%v; using %s", err, fallbackFamily)
		}
		return nil
	}
	return data
}

func (g *Generator) loadAsset(ctx context.Context, what, ref string, warn func(string, ...any)) []byte {
	if ref == "" {
		return nil
	}
	data, err := g.assets.Resolve(ctx, ref)
	if err != nil {
		warn("%s: %v", what, err)
		return nil
	}
	return data
}
