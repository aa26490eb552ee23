package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/export"
	"github.com/andresuchdata/inventory-dashboard/internal/loader"
	"github.com/andresuchdata/inventory-dashboard/internal/service"
	"github.com/andresuchdata/inventory-dashboard/internal/source"
	"github.com/andresuchdata/inventory-dashboard/internal/storage"
	"github.com/andresuchdata/inventory-dashboard/internal/views"
	"github.com/andresuchdata/inventory-dashboard/pkg/logger"
	"github.com/urfave/cli/v2"
)

const defaultReportsPrefix = "reports"

// runtime holds what the commands share once Before has run.
type runtime struct {
	cfg         *config.Config
	service     *service.DashboardService
	closeSource func() error
}

func newApp() *cli.App {
	rt := &runtime{}

	return &cli.App{
		Name:  "report",
		Usage: "Render inventory dashboard views from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Record source: local, s3, drive or postgres",
				EnvVars: []string{"SOURCE_KIND"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory holding the purchase, sales and stock files",
				EnvVars: []string{"SOURCE_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "views",
				Usage:  "List the dashboard views",
				Action: listViews,
			},
			{
				Name:      "show",
				Usage:     "Print one view",
				ArgsUsage: "<view>",
				Flags: append(paramFlags(),
					&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON"},
				),
				Before: rt.init,
				After:  rt.close,
				Action: rt.show,
			},
			{
				Name:      "export",
				Usage:     "Write one view as CSV or XLSX",
				ArgsUsage: "<view>",
				Flags: append(paramFlags(),
					&cli.StringFlag{Name: "format", Usage: "csv or xlsx", Value: string(export.FormatCSV)},
					&cli.StringFlag{Name: "out", Usage: "Output file (default <view>.<format>, - for stdout)"},
					&cli.BoolFlag{Name: "upload", Usage: "Also upload the file to the storage bucket"},
					&cli.StringFlag{Name: "upload-prefix", Usage: "Object key prefix for uploads", Value: defaultReportsPrefix},
				),
				Before: rt.init,
				After:  rt.close,
				Action: rt.export,
			},
			{
				Name:  "published",
				Usage: "List reports uploaded to the storage bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "upload-prefix", Usage: "Object key prefix for uploads", Value: defaultReportsPrefix},
				},
				Action: listPublished,
			},
		},
	}
}

func paramFlags() []cli.Flag {
	d := views.DefaultParams()
	return []cli.Flag{
		&cli.StringFlag{Name: "period", Usage: "weekly, monthly or quarterly", Value: string(d.Period)},
		&cli.Float64Flag{Name: "low", Usage: "Lower sold percentage bound", Value: d.LowPct},
		&cli.Float64Flag{Name: "high", Usage: "Upper sold percentage bound", Value: d.HighPct},
		&cli.Float64Flag{Name: "quantile", Usage: "Stock quantile for online sales prioritization", Value: d.Quantile},
		&cli.Float64Flag{Name: "threshold", Usage: "Cumulative share cut-off for top products", Value: d.Threshold},
	}
}

// loadConfig applies global flag overrides on top of the environment.
func loadConfig(c *cli.Context) *config.Config {
	cfg := *config.Load()
	if v := c.String("source"); v != "" {
		cfg.Source.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v := c.String("data-dir"); v != "" {
		cfg.Source.Dir = v
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	return &cfg
}

func (rt *runtime) init(c *cli.Context) error {
	rt.cfg = loadConfig(c)

	src, closeSource, err := source.New(c.Context, rt.cfg)
	if err != nil {
		return fmt.Errorf("configure %s source: %w", rt.cfg.Source.Kind, err)
	}
	rt.closeSource = closeSource

	data := loader.NewCache(loader.New(src))
	if _, err := data.Dataset(c.Context); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	rt.service = service.NewDashboardService(data, nil)
	return nil
}

func (rt *runtime) close(c *cli.Context) error {
	if rt.closeSource == nil {
		return nil
	}
	return rt.closeSource()
}

func listViews(c *cli.Context) error {
	return writeMenu(c.App.Writer, views.Menu())
}

func (rt *runtime) render(c *cli.Context) (*domain.Report, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one view, got %d", c.NArg())
	}
	kind, err := domain.ParseViewKind(c.Args().First())
	if err != nil {
		return nil, err
	}

	params, err := views.ParseParams(paramValues(c))
	if err != nil {
		return nil, err
	}
	return rt.service.Report(c.Context, kind, params)
}

func paramValues(c *cli.Context) url.Values {
	values := url.Values{}
	values.Set("period", c.String("period"))
	for _, name := range []string{"low", "high", "quantile", "threshold"} {
		values.Set(name, fmt.Sprintf("%g", c.Float64(name)))
	}
	return values
}

func (rt *runtime) show(c *cli.Context) error {
	report, err := rt.render(c)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, report)
	}
	return writeReport(c.App.Writer, report)
}

func (rt *runtime) export(c *cli.Context) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	report, err := rt.render(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = format.FileName(report.View)
	}
	if out == "-" {
		_, err = c.App.Writer.Write(buf.Bytes())
	} else {
		err = os.WriteFile(out, buf.Bytes(), 0o644)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	if !c.Bool("upload") {
		return nil
	}

	store, err := storage.NewMinioClient(source.StorageConfig(rt.cfg.Storage))
	if err != nil {
		return err
	}
	key := path.Join(c.String("upload-prefix"), format.FileName(report.View))
	if err := store.UploadObject(c.Context, key, format.ContentType(), buf.Bytes()); err != nil {
		return err
	}
	logger.Log.Info().Str("key", key).Int("bytes", buf.Len()).Msg("report uploaded")
	return nil
}

func listPublished(c *cli.Context) error {
	cfg := loadConfig(c)
	store, err := storage.NewMinioClient(source.StorageConfig(cfg.Storage))
	if err != nil {
		return err
	}
	return printPublished(c.Context, c.App.Writer, store, c.String("upload-prefix"))
}

func printPublished(ctx context.Context, w io.Writer, store storage.ObjectStorage, prefix string) error {
	objects, err := store.ListObjects(ctx, strings.TrimSuffix(prefix, "/")+"/")
	if err != nil {
		return err
	}
	return writeObjects(w, objects)
}
