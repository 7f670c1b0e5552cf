package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/engine"
	"github.com/wegner15/billforge/internal/logger"
	"github.com/wegner15/billforge/layout"
	"github.com/wegner15/billforge/logo"
	canvasrenderer "github.com/wegner15/billforge/renderer/canvas"
	"github.com/wegner15/billforge/theme"
)

var (
	renderIn       string
	renderOut      string
	renderTheme    string
	renderDebug    string
	renderLogoURL  string
	renderLogoFile string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a document model (JSON) into a PDF",
	Long: `Reads a complete invoice or quotation model from a JSON file and writes
the rendered PDF. The output name defaults to the document's download
filename, eg. "Acme_Ltd_Invoice_#INV-042.pdf".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("render")

		raw, err := os.ReadFile(renderIn)
		if err != nil {
			return fmt.Errorf("read document model: %w", err)
		}
		var doc document.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse document model: %w", err)
		}

		gen := &engine.Generator{
			Backend: canvasrenderer.NewRenderer("."),
			Logos: &logo.Resolver{
				BaseURL: renderLogoURL,
				Client:  http.DefaultClient,
				Log:     logger.WithComponent("logo"),
			},
			Now: time.Now,
			Log: log,
		}

		if renderTheme != "" {
			th, err := theme.ParseFile(renderTheme)
			if err != nil {
				return fmt.Errorf("load theme: %w", err)
			}
			gen.Theme = &th
		}

		// A local logo file bypasses the blob store lookup.
		if renderLogoFile != "" {
			data, err := os.ReadFile(renderLogoFile)
			if err != nil {
				return fmt.Errorf("read logo file: %w", err)
			}
			gen.Logo = gen.Logos.FromBytes(data)
		}

		ctx := cmd.Context()
		if renderDebug != "" {
			result, err := gen.Layout(ctx, &doc)
			if err != nil {
				return err
			}
			if err := layout.WriteDebugJSON(result, renderDebug); err != nil {
				return fmt.Errorf("write layout debug json: %w", err)
			}
			log.Info().Str("path", renderDebug).Msg("layout debug json written")
		}

		data, err := gen.Render(ctx, &doc)
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = engine.Filename(&doc)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", out).Int("bytes", len(data)).Msg("pdf written")
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderIn, "in", "", "path to the document model JSON (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output PDF path (defaults to the document's download name)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "path to a theme definition file")
	renderCmd.Flags().StringVar(&renderDebug, "debug", "", "also write the layout result as JSON to this path")
	renderCmd.Flags().StringVar(&renderLogoURL, "logo-base-url", os.Getenv("BLOB_BASE_URL"), "base URL of the logo blob store")
	renderCmd.Flags().StringVar(&renderLogoFile, "logo-file", "", "local logo image, bypasses the blob store")
	renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}
