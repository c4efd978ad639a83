package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sangkips/salesdoc-api/internal/docgen"
	"github.com/sangkips/salesdoc-api/internal/logger"
	"github.com/sangkips/salesdoc-api/pkg/output"
)

// renderInput is the JSON accepted by the render command.
type renderInput struct {
	Document docgen.Document        `json:"document"`
	Business docgen.BusinessProfile `json:"business"`
	Catalog  docgen.ProductList     `json:"catalog,omitempty"`
}

var renderOpts struct {
	action     string
	out        string
	font       string
	fontFamily string
	assets     string
}

var renderCmd = &cobra.Command{
	Use:   "render [input.json]",
	Short: "Render a document described in JSON to PDF",
	Example: `  # Save IV-6701-0001.pdf into ./out
  docgen render invoice.json --out ./out

  # Write a preview to a temporary file and print its path
  docgen render quotation.json --action preview`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderOpts.action, "action", "download", "download or preview")
	f.StringVarP(&renderOpts.out, "out", "o", ".", "directory downloads are saved into")
	f.StringVar(&renderOpts.font, "font", "./assets/fonts/THSarabunNew.ttf", "TrueType font with Thai glyphs")
	f.StringVar(&renderOpts.fontFamily, "font-family", "THSarabunNew", "font family name")
	f.StringVar(&renderOpts.assets, "assets", ".", "directory logo and proof image paths are relative to")
}

// tempViewer writes previews to temporary files and returns their paths.
type tempViewer struct{}

func (tempViewer) Publish(_ context.Context, data []byte) (string, error) {
	f, err := os.CreateTemp("", "preview-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", err
	}
	return f.Name(), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	action, err := docgen.ParseAction(renderOpts.action)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var in renderInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	assetsDir := renderOpts.assets
	if assetsDir == "." {
		assetsDir = filepath.Dir(args[0])
	}

	gen := docgen.NewGenerator(docgen.Options{
		Fonts:      docgen.NewFontLoader(renderOpts.font),
		FontFamily: renderOpts.fontFamily,
		Assets:     docgen.LocalAssets{BaseDir: assetsDir},
		Saver:      output.NewDirSaver(renderOpts.out),
		Viewer:     tempViewer{},
		Logger:     logger.WithComponent("docgen"),
	})

	res, err := gen.Generate(cmd.Context(), action, &in.Document, &in.Business, in.Catalog)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	switch action {
	case docgen.ActionPreview:
		fmt.Fprintln(cmd.OutOrStdout(), res.ViewerURL)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(renderOpts.out, res.FileName))
	}
	return nil
}
