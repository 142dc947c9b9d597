package core

import (
	"context"
)

// Notifier delivers email on a best-effort basis. Implementations log
// delivery failures and never report them to the caller.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, string) {}

// Service is the entry point for every alumni operation. Each method runs
// in its own transaction on a freshly acquired connection.
type Service struct {
	store    *PgStore
	notifier Notifier
	importer *Importer
	exporter *Exporter
}

// NewService wires the store, notifier and batch pipeline together.
// A nil notifier disables email.
func NewService(store *PgStore, notifier Notifier, opts ImportOptions) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		importer: NewImporter(store, opts),
		exporter: NewExporter(store),
	}
}

// Store returns the underlying store.
func (s *Service) Store() *PgStore {
	return s.store
}

// ImportCSV runs the batch importer on path.
func (s *Service) ImportCSV(ctx context.Context, path string) (ImportResult, error) {
	return s.importer.Import(ctx, path)
}

// ExportCSV runs the batch exporter to path.
func (s *Service) ExportCSV(ctx context.Context, path string) (ExportResult, error) {
	return s.exporter.Export(ctx, path)
}
