package source

import (
	"context"
	"fmt"

	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/drive"
	"github.com/andresuchdata/inventory-dashboard/internal/repository/postgres"
	"github.com/andresuchdata/inventory-dashboard/internal/storage"
)

// New builds the Source selected by cfg.Source.Kind. The returned close
// function releases any connection the source holds.
func New(ctx context.Context, cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }
	names := FileNames{
		domain.TablePurchases: cfg.Source.PurchasesFile,
		domain.TableSales:     cfg.Source.SalesFile,
		domain.TableStock:     cfg.Source.StockFile,
	}

	switch cfg.Source.Kind {
	case "", "local":
		return NewLocalSource(cfg.Source.Dir, names), noop, nil

	case "s3":
		client, err := storage.NewMinioClient(StorageConfig(cfg.Storage))
		if err != nil {
			return nil, nil, err
		}
		return NewObjectSource(client, cfg.Storage.Prefix, cfg.Source.StagingDir, names), noop, nil

	case "drive":
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, nil, err
		}
		downloader, err := drive.NewDownloader(ctx, svc, cfg.Drive.FolderPath)
		if err != nil {
			return nil, nil, err
		}
		return NewDriveSource(downloader, cfg.Source.StagingDir, names), noop, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		tables := map[domain.TableKind]string{
			domain.TablePurchases: cfg.Database.PurchasesTable,
			domain.TableSales:     cfg.Database.SalesTable,
			domain.TableStock:     cfg.Database.StockTable,
		}
		return NewDatabaseSource(db, tables), db.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, cfg.Source.Kind)
}

// StorageConfig maps the storage section of the app config to the client config.
func StorageConfig(cfg config.StorageConfig) storage.Config {
	return storage.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		UseSSL:    cfg.UseSSL,
	}
}
