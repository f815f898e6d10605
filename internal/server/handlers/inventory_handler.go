package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbaye/vsphere-inventory/internal/domain/models"
	"github.com/mbaye/vsphere-inventory/internal/service/inventory"
)

// InventoryHandler serves collected inventory over HTTP and triggers
// on-demand collection runs.
type InventoryHandler struct {
	collector inventory.Collector
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(collector inventory.Collector, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{collector: collector, logger: logger}
}

// Latest returns the full latest snapshot.
func (h *InventoryHandler) Latest(c *gin.Context) {
	snapshot, ok := h.latestSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// VirtualMachines returns the virtual machine assets of the latest snapshot.
func (h *InventoryHandler) VirtualMachines(c *gin.Context) {
	snapshot, ok := h.latestSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":           snapshot.Source,
		"collected_at":     snapshot.CollectedAt,
		"virtual_machines": snapshot.VirtualMachines,
	})
}

// Hosts returns the host assets of the latest snapshot.
func (h *InventoryHandler) Hosts(c *gin.Context) {
	snapshot, ok := h.latestSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":       snapshot.Source,
		"collected_at": snapshot.CollectedAt,
		"hosts":        snapshot.Hosts,
	})
}

// Datastores returns the datastore assets of the latest snapshot.
func (h *InventoryHandler) Datastores(c *gin.Context) {
	snapshot, ok := h.latestSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":       snapshot.Source,
		"collected_at": snapshot.CollectedAt,
		"datastores":   snapshot.Datastores,
	})
}

// Refresh triggers an immediate collection run and reports its counts.
func (h *InventoryHandler) Refresh(c *gin.Context) {
	snapshot, err := h.collector.Collect(c.Request.Context())
	if err != nil {
		h.logger.Error("on-demand collection failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory collection failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":       snapshot.Source,
		"collected_at": snapshot.CollectedAt,
		"vms":          snapshot.VMCount,
		"hosts":        snapshot.HostCount,
		"datastores":   snapshot.DatastoreCount,
	})
}

func (h *InventoryHandler) latestSnapshot(c *gin.Context) (*models.InventorySnapshot, bool) {
	snap, err := h.collector.Latest(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading latest snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return nil, false
	}

	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no inventory collected yet"})
		return nil, false
	}

	return snap, true
}
