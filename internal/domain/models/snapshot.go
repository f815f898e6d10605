package models

import "time"

// InventorySnapshot represents the full set of assets collected during one
// inventory run. It is what gets stored in MongoDB and pushed to downstream
// consumers.
type InventorySnapshot struct {
	Source          string                `bson:"source" json:"source"`
	CollectedAt     time.Time             `bson:"collected_at" json:"collected_at"`
	VMCount         int                   `bson:"vm_count" json:"vm_count"`
	HostCount       int                   `bson:"host_count" json:"host_count"`
	DatastoreCount  int                   `bson:"datastore_count" json:"datastore_count"`
	VirtualMachines []VirtualMachineAsset `bson:"virtual_machines" json:"virtual_machines"`
	Hosts           []HostAsset           `bson:"hosts" json:"hosts"`
	Datastores      []DatastoreAsset      `bson:"datastores" json:"datastores"`
}
