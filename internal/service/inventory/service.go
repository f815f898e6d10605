package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vmware/govmomi/vim25/mo"
	"go.uber.org/zap"

	"github.com/mbaye/vsphere-inventory/internal/domain/models"
	"github.com/mbaye/vsphere-inventory/internal/repository/mongodb"
)

// AssetLister enumerates raw managed objects from the vSphere endpoint.
type AssetLister interface {
	ListVirtualMachines(ctx context.Context) ([]mo.VirtualMachine, error)
	ListHosts(ctx context.Context) ([]mo.HostSystem, error)
	ListDatastores(ctx context.Context) ([]mo.Datastore, error)
}

// Exporter pushes a collected snapshot to a downstream consumer.
type Exporter interface {
	Name() string
	Export(ctx context.Context, snapshot models.InventorySnapshot) error
}

// Collector exposes the operations the HTTP and scheduler layers consume.
type Collector interface {
	Collect(ctx context.Context) (*models.InventorySnapshot, error)
	Latest(ctx context.Context) (*models.InventorySnapshot, error)
}

// Service orchestrates inventory runs: enumerate assets, normalize them
// into documents, persist the snapshot and fan it out to exporters.
type Service struct {
	lister    AssetLister
	repo      mongodb.Repository
	exporters []Exporter
	source    string
	logger    *zap.Logger

	mu     sync.RWMutex
	latest *models.InventorySnapshot
}

// NewService wires a new inventory service instance. The source names the
// vCenter endpoint the snapshots originate from.
func NewService(lister AssetLister, repo mongodb.Repository, source string, logger *zap.Logger, exporters ...Exporter) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lister:    lister,
		repo:      repo,
		exporters: exporters,
		source:    source,
		logger:    logger,
	}
}

// Collect performs one full inventory run. The resulting snapshot is
// cached for the API even when persistence fails; exporter failures are
// logged and do not fail the run.
func (s *Service) Collect(ctx context.Context) (*models.InventorySnapshot, error) {
	started := time.Now()

	vms, err := s.lister.ListVirtualMachines(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect virtual machines: %w", err)
	}

	hosts, err := s.lister.ListHosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect hosts: %w", err)
	}

	datastores, err := s.lister.ListDatastores(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect datastores: %w", err)
	}

	snapshot := models.InventorySnapshot{
		Source:          s.source,
		CollectedAt:     time.Now().UTC(),
		VirtualMachines: make([]models.VirtualMachineAsset, 0, len(vms)),
		Hosts:           make([]models.HostAsset, 0, len(hosts)),
		Datastores:      make([]models.DatastoreAsset, 0, len(datastores)),
	}

	for _, vm := range vms {
		snapshot.VirtualMachines = append(snapshot.VirtualMachines, ParseVirtualMachine(vm))
	}
	for _, host := range hosts {
		snapshot.Hosts = append(snapshot.Hosts, ParseHost(host))
	}
	for _, datastore := range datastores {
		snapshot.Datastores = append(snapshot.Datastores, ParseDatastore(datastore))
	}

	snapshot.VMCount = len(snapshot.VirtualMachines)
	snapshot.HostCount = len(snapshot.Hosts)
	snapshot.DatastoreCount = len(snapshot.Datastores)

	s.mu.Lock()
	s.latest = &snapshot
	s.mu.Unlock()

	s.logger.Info("inventory collected",
		zap.String("source", s.source),
		zap.Int("vms", snapshot.VMCount),
		zap.Int("hosts", snapshot.HostCount),
		zap.Int("datastores", snapshot.DatastoreCount),
		zap.Duration("duration", time.Since(started)))

	if s.repo != nil {
		if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
			return &snapshot, fmt.Errorf("persist snapshot: %w", err)
		}
	}

	for _, exporter := range s.exporters {
		if err := exporter.Export(ctx, snapshot); err != nil {
			s.logger.Warn("exporter failed",
				zap.String("exporter", exporter.Name()),
				zap.Error(err))
		}
	}

	return &snapshot, nil
}

// Latest returns the most recent snapshot, falling back to the store when
// no run has completed in this process yet. A nil snapshot with nil error
// means nothing has been collected at all.
func (s *Service) Latest(ctx context.Context) (*models.InventorySnapshot, error) {
	s.mu.RLock()
	cached := s.latest
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	if s.repo == nil {
		return nil, nil
	}

	snapshot, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return snapshot, nil
}
